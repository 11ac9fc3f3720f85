package services

import (
	"testing"
	"time"

	"moneyflow/internal/models"
	"moneyflow/internal/pagination"
	"moneyflow/internal/testutil"
)

func TestCreateTransaction(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))

		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		tx, err := svc.CreateTransaction(user.ID, category.ID, models.TransactionTypeExpense, 150_000, "Lunch", "with team", time.Now())
		testutil.AssertNoError(t, err)

		if tx.ID == 0 {
			t.Fatal("expected non-zero transaction ID")
		}
		if tx.Amount != 150_000 {
			t.Errorf("expected amount 150000, got %d", tx.Amount)
		}
		if tx.Category.ID != category.ID {
			t.Error("expected category to be preloaded on the response")
		}
	})

	t.Run("zero_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))

		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.CreateTransaction(user.ID, category.ID, models.TransactionTypeExpense, 0, "Lunch", "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("empty_description", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))

		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.CreateTransaction(user.ID, category.ID, models.TransactionTypeExpense, 1000, "", "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))

		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.CreateTransaction(user.ID, category.ID, models.TransactionType("transfer"), 1000, "x", "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_TRANSACTION_TYPE")
	})

	t.Run("category_type_mismatch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))

		user := testutil.CreateTestUser(t, db)
		income := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeIncome)

		_, err := svc.CreateTransaction(user.ID, income.ID, models.TransactionTypeExpense, 1000, "x", "", time.Now())
		testutil.AssertAppError(t, err, "CATEGORY_TYPE_MISMATCH")
	})

	t.Run("other_users_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))

		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		foreign := testutil.CreateTestCategory(t, db, other.ID, models.CategoryTypeExpense)

		_, err := svc.CreateTransaction(user.ID, foreign.ID, models.TransactionTypeExpense, 1000, "x", "", time.Now())
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("default_category_usable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))

		user := testutil.CreateTestUser(t, db)
		def := testutil.CreateTestDefaultCategory(t, db, models.CategoryTypeIncome)

		_, err := svc.CreateTransaction(user.ID, def.ID, models.TransactionTypeIncome, 5_000_000, "Salary", "", time.Now())
		testutil.AssertNoError(t, err)
	})
}

func TestGetUserTransactions(t *testing.T) {
	t.Run("newest_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))

		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		old := time.Now().AddDate(0, 0, -10)
		recent := time.Now().AddDate(0, 0, -1)
		testutil.CreateTestTransactionOn(t, db, user.ID, category.ID, models.TransactionTypeExpense, 1000, old)
		testutil.CreateTestTransactionOn(t, db, user.ID, category.ID, models.TransactionTypeExpense, 2000, recent)

		page, err := svc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{})
		testutil.AssertNoError(t, err)

		if len(page.Data) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(page.Data))
		}
		if page.Data[0].Amount != 2000 {
			t.Error("expected the newest transaction first")
		}
	})

	t.Run("scoped_to_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))

		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		mine := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		theirs := testutil.CreateTestCategory(t, db, other.ID, models.CategoryTypeExpense)

		testutil.CreateTestTransaction(t, db, user.ID, mine.ID, models.TransactionTypeExpense, 1000)
		testutil.CreateTestTransaction(t, db, other.ID, theirs.ID, models.TransactionTypeExpense, 9999)

		page, err := svc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{})
		testutil.AssertNoError(t, err)

		if page.TotalItems != 1 {
			t.Errorf("expected 1 transaction, got %d", page.TotalItems)
		}
	})

	t.Run("filter_by_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))

		user := testutil.CreateTestUser(t, db)
		income := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeIncome)
		expense := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		testutil.CreateTestTransaction(t, db, user.ID, income.ID, models.TransactionTypeIncome, 5000)
		testutil.CreateTestTransaction(t, db, user.ID, expense.ID, models.TransactionTypeExpense, 1000)

		txType := models.TransactionTypeIncome
		page, err := svc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{Type: &txType})
		testutil.AssertNoError(t, err)

		if page.TotalItems != 1 {
			t.Errorf("expected 1 income transaction, got %d", page.TotalItems)
		}
	})

	t.Run("filter_by_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))

		user := testutil.CreateTestUser(t, db)
		food := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		rent := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		testutil.CreateTestTransaction(t, db, user.ID, food.ID, models.TransactionTypeExpense, 1000)
		testutil.CreateTestTransaction(t, db, user.ID, rent.ID, models.TransactionTypeExpense, 2000)

		page, err := svc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{CategoryID: &food.ID})
		testutil.AssertNoError(t, err)

		if page.TotalItems != 1 {
			t.Errorf("expected 1 transaction in category, got %d", page.TotalItems)
		}
	})

	t.Run("filter_by_date_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))

		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		testutil.CreateTestTransactionOn(t, db, user.ID, category.ID, models.TransactionTypeExpense, 1000, time.Now().AddDate(0, 0, -30))
		testutil.CreateTestTransactionOn(t, db, user.ID, category.ID, models.TransactionTypeExpense, 2000, time.Now().AddDate(0, 0, -2))

		from := time.Now().AddDate(0, 0, -7)
		page, err := svc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{FromDate: &from})
		testutil.AssertNoError(t, err)

		if page.TotalItems != 1 {
			t.Errorf("expected 1 transaction in range, got %d", page.TotalItems)
		}
	})

	t.Run("search_matches_description_and_notes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))

		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.CreateTransaction(user.ID, category.ID, models.TransactionTypeExpense, 1000, "Coffee at Highlands", "", time.Now())
		testutil.AssertNoError(t, err)
		_, err = svc.CreateTransaction(user.ID, category.ID, models.TransactionTypeExpense, 2000, "Groceries", "bought coffee beans", time.Now())
		testutil.AssertNoError(t, err)
		_, err = svc.CreateTransaction(user.ID, category.ID, models.TransactionTypeExpense, 3000, "Taxi", "", time.Now())
		testutil.AssertNoError(t, err)

		page, err := svc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{Search: "coffee"})
		testutil.AssertNoError(t, err)

		if page.TotalItems != 2 {
			t.Errorf("expected 2 matches for coffee, got %d", page.TotalItems)
		}
	})
}

func TestGetTransactionByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))

		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		created := testutil.CreateTestTransaction(t, db, user.ID, category.ID, models.TransactionTypeExpense, 1000)

		tx, err := svc.GetTransactionByID(user.ID, created.ID)
		testutil.AssertNoError(t, err)
		if tx.Category.ID != category.ID {
			t.Error("expected category to be preloaded")
		}
	})

	t.Run("other_users_transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))

		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		theirs := testutil.CreateTestCategory(t, db, other.ID, models.CategoryTypeExpense)
		foreign := testutil.CreateTestTransaction(t, db, other.ID, theirs.ID, models.TransactionTypeExpense, 1000)

		_, err := svc.GetTransactionByID(user.ID, foreign.ID)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestUpdateTransaction(t *testing.T) {
	t.Run("update_amount_and_notes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))

		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		created := testutil.CreateTestTransaction(t, db, user.ID, category.ID, models.TransactionTypeExpense, 1000)

		amount := int64(2500)
		notes := "updated"
		tx, err := svc.UpdateTransaction(user.ID, created.ID, TransactionUpdate{Amount: &amount, Notes: &notes})
		testutil.AssertNoError(t, err)

		if tx.Amount != 2500 {
			t.Errorf("expected amount 2500, got %d", tx.Amount)
		}
		if tx.Notes != "updated" {
			t.Errorf("expected notes updated, got %s", tx.Notes)
		}
	})

	t.Run("move_to_category_of_other_type_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))

		user := testutil.CreateTestUser(t, db)
		expense := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		income := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeIncome)
		created := testutil.CreateTestTransaction(t, db, user.ID, expense.ID, models.TransactionTypeExpense, 1000)

		_, err := svc.UpdateTransaction(user.ID, created.ID, TransactionUpdate{CategoryID: &income.ID})
		testutil.AssertAppError(t, err, "CATEGORY_TYPE_MISMATCH")
	})

	t.Run("type_and_category_change_together", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))

		user := testutil.CreateTestUser(t, db)
		expense := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		income := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeIncome)
		created := testutil.CreateTestTransaction(t, db, user.ID, expense.ID, models.TransactionTypeExpense, 1000)

		newType := models.TransactionTypeIncome
		tx, err := svc.UpdateTransaction(user.ID, created.ID, TransactionUpdate{Type: &newType, CategoryID: &income.ID})
		testutil.AssertNoError(t, err)

		if tx.Type != models.TransactionTypeIncome {
			t.Errorf("expected type income, got %s", tx.Type)
		}
		if tx.CategoryID != income.ID {
			t.Errorf("expected category %d, got %d", income.ID, tx.CategoryID)
		}
	})

	t.Run("negative_amount_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))

		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		created := testutil.CreateTestTransaction(t, db, user.ID, category.ID, models.TransactionTypeExpense, 1000)

		amount := int64(-100)
		_, err := svc.UpdateTransaction(user.ID, created.ID, TransactionUpdate{Amount: &amount})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))

		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateTransaction(user.ID, 99999, TransactionUpdate{})
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("soft_delete_hides_from_listing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))

		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		created := testutil.CreateTestTransaction(t, db, user.ID, category.ID, models.TransactionTypeExpense, 1000)

		err := svc.DeleteTransaction(user.ID, created.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.GetTransactionByID(user.ID, created.ID)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")

		// The row survives as a soft-deleted record
		var count int64
		db.Unscoped().Model(&models.Transaction{}).Where("id = ?", created.ID).Count(&count)
		if count != 1 {
			t.Error("expected soft-deleted row to remain in the table")
		}
	})

	t.Run("other_users_transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))

		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		theirs := testutil.CreateTestCategory(t, db, other.ID, models.CategoryTypeExpense)
		foreign := testutil.CreateTestTransaction(t, db, other.ID, theirs.ID, models.TransactionTypeExpense, 1000)

		err := svc.DeleteTransaction(user.ID, foreign.ID)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}
