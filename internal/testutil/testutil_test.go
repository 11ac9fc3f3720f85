package testutil_test

import (
	"testing"

	"moneyflow/internal/errors"
	"moneyflow/internal/models"
	"moneyflow/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "categories", "transactions", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == 0 {
		t.Fatal("user should have a non-zero ID")
	}

	admin := testutil.CreateTestAdmin(t, db)
	if !admin.IsAdmin {
		t.Error("admin fixture should have the admin flag set")
	}

	category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
	if category.Type != models.CategoryTypeExpense {
		t.Errorf("expected expense category, got %s", category.Type)
	}
	if category.UserID == nil || *category.UserID != user.ID {
		t.Error("category should belong to the user")
	}

	defCategory := testutil.CreateTestDefaultCategory(t, db, models.CategoryTypeIncome)
	if !defCategory.IsDefault || defCategory.UserID != nil {
		t.Error("default category should be system-owned")
	}

	tx := testutil.CreateTestTransaction(t, db, user.ID, category.ID, models.TransactionTypeExpense, 1000)
	if tx.Amount != 1000 {
		t.Errorf("expected amount 1000, got %d", tx.Amount)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrCategoryNotFound, "custom message")
	testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
