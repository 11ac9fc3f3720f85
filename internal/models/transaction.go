package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents a financial transaction in the system. Amounts are
// whole VND stored as int64; a transaction's type must match its category's
// type, which the transaction service enforces on create and update.
type Transaction struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	CategoryID  uint            `gorm:"not null" json:"category_id"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Amount      int64           `gorm:"type:bigint;not null" json:"amount"`
	Description string          `gorm:"not null" json:"description"`
	Notes       string          `json:"notes"`
	Date        time.Time       `gorm:"not null;index" json:"date"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID" json:"category"`
}
