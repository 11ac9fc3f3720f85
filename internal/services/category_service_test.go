package services

import (
	"testing"

	"moneyflow/internal/models"
	"moneyflow/internal/pagination"
	"moneyflow/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)

		category, err := svc.CreateCategory(user.ID, "Groceries", models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)

		if category.ID == 0 {
			t.Fatal("expected non-zero category ID")
		}
		if category.UserID == nil || *category.UserID != user.ID {
			t.Error("expected category to be owned by the user")
		}
		if category.IsDefault {
			t.Error("user-created categories must not be defaults")
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "", models.CategoryTypeExpense)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Weird", models.CategoryType("transfer"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("duplicate_name_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Rent", models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(user.ID, "Rent", models.CategoryTypeExpense)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("duplicate_of_default_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)
		def := testutil.CreateTestDefaultCategory(t, db, models.CategoryTypeExpense)

		_, err := svc.CreateCategory(user.ID, def.Name, models.CategoryTypeExpense)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("same_name_for_different_users", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(alice.ID, "Travel", models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(bob.ID, "Travel", models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)
	})
}

func TestGetUserCategories(t *testing.T) {
	t.Run("own_plus_defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		testutil.CreateTestDefaultCategory(t, db, models.CategoryTypeIncome)
		testutil.CreateTestCategory(t, db, other.ID, models.CategoryTypeExpense)

		page, err := svc.GetUserCategories(user.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)

		if page.TotalItems != 2 {
			t.Errorf("expected 2 visible categories, got %d", page.TotalItems)
		}
		for _, c := range page.Data {
			if c.UserID != nil && *c.UserID == other.ID {
				t.Error("another user's category leaked into the listing")
			}
		}
	})

	t.Run("defaults_sort_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		testutil.CreateTestDefaultCategory(t, db, models.CategoryTypeExpense)

		page, err := svc.GetUserCategories(user.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)

		if len(page.Data) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(page.Data))
		}
		if !page.Data[0].IsDefault {
			t.Error("expected defaults to sort before user categories")
		}
	})
}

func TestGetUserCategoriesByType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db)

	user := testutil.CreateTestUser(t, db)
	testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeIncome)
	testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
	testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

	page, err := svc.GetUserCategoriesByType(user.ID, models.CategoryTypeExpense, pagination.PageRequest{})
	testutil.AssertNoError(t, err)

	if page.TotalItems != 2 {
		t.Errorf("expected 2 expense categories, got %d", page.TotalItems)
	}
	for _, c := range page.Data {
		if c.Type != models.CategoryTypeExpense {
			t.Errorf("expected only expense categories, got %s", c.Type)
		}
	}
}

func TestGetCategoryByID(t *testing.T) {
	t.Run("own_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		category, err := svc.GetCategoryByID(user.ID, created.ID)
		testutil.AssertNoError(t, err)
		if category.Name != created.Name {
			t.Errorf("expected name %s, got %s", created.Name, category.Name)
		}
	})

	t.Run("default_category_visible", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)
		def := testutil.CreateTestDefaultCategory(t, db, models.CategoryTypeIncome)

		_, err := svc.GetCategoryByID(user.ID, def.ID)
		testutil.AssertNoError(t, err)
	})

	t.Run("other_users_category_hidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		foreign := testutil.CreateTestCategory(t, db, other.ID, models.CategoryTypeExpense)

		_, err := svc.GetCategoryByID(user.ID, foreign.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetCategoryByID(user.ID, 99999)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("rename", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.UpdateCategory(user.ID, created.ID, "Renamed")
		testutil.AssertNoError(t, err)

		category, err := svc.GetCategoryByID(user.ID, created.ID)
		testutil.AssertNoError(t, err)
		if category.Name != "Renamed" {
			t.Errorf("expected name Renamed, got %s", category.Name)
		}
	})

	t.Run("default_category_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)
		def := testutil.CreateTestDefaultCategory(t, db, models.CategoryTypeExpense)

		_, err := svc.UpdateCategory(user.ID, def.ID, "Hijacked")
		testutil.AssertAppError(t, err, "DEFAULT_CATEGORY")
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		err := svc.DeleteCategory(user.ID, created.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.GetCategoryByID(user.ID, created.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("default_category_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)
		def := testutil.CreateTestDefaultCategory(t, db, models.CategoryTypeExpense)

		err := svc.DeleteCategory(user.ID, def.ID)
		testutil.AssertAppError(t, err, "DEFAULT_CATEGORY")
	})

	t.Run("category_with_transactions_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		testutil.CreateTestTransaction(t, db, user.ID, created.ID, models.TransactionTypeExpense, 50_000)

		err := svc.DeleteCategory(user.ID, created.ID)
		testutil.AssertAppError(t, err, "CATEGORY_IN_USE")
	})
}
