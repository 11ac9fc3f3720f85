package chat

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	apperrors "moneyflow/internal/errors"
	"moneyflow/internal/models"
)

const (
	// DefaultWindowDays is the lookback used when a caller does not specify one.
	DefaultWindowDays = 30
	// MaxWindowDays caps the lookback a caller may request.
	MaxWindowDays = 365

	defaultTopCategories = 5
)

// CategoryAmount is one entry of the expense-category ranking.
type CategoryAmount struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
}

// TransactionRecord is a normalized transaction as exposed to the assistant.
type TransactionRecord struct {
	Date        string `json:"date"`
	Amount      int64  `json:"amount"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Notes       string `json:"notes,omitempty"`
}

// FinancialWindow holds the aggregated view of a user's transactions over a
// trailing N-day lookback. It is computed fresh per request and never stored.
type FinancialWindow struct {
	Period               string              `json:"period"`
	Days                 int                 `json:"days"`
	TotalIncome          int64               `json:"total_income"`
	TotalExpense         int64               `json:"total_expense"`
	NetBalance           int64               `json:"net_balance"`
	TransactionCount     int                 `json:"transaction_count"`
	TopExpenseCategories []CategoryAmount    `json:"top_expense_categories"`
	DailyExpenses        map[string]int64    `json:"daily_expenses"`
	Transactions         []TransactionRecord `json:"transactions"`
}

// Aggregator computes financial summaries over persisted transactions.
type Aggregator struct {
	db *gorm.DB
}

// NewAggregator creates a new Aggregator over the given database.
func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

// ClampDays bounds a requested lookback to [1, MaxWindowDays], substituting
// the default for zero or negative values.
func ClampDays(days int) int {
	if days <= 0 {
		return DefaultWindowDays
	}
	if days > MaxWindowDays {
		return MaxWindowDays
	}
	return days
}

// FinancialData fetches all non-deleted transactions for the user dated within
// the trailing window and computes totals, the expense-category ranking, and
// per-weekday expense sums. An empty window yields zero values, not an error.
func (a *Aggregator) FinancialData(ctx context.Context, userID uint, days int) (*FinancialWindow, error) {
	days = ClampDays(days)

	end := time.Now()
	start := end.AddDate(0, 0, -days)

	var transactions []models.Transaction
	err := a.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date ASC").
		Find(&transactions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	window := &FinancialWindow{
		Period:        fmt.Sprintf("last %d days", days),
		Days:          days,
		DailyExpenses: make(map[string]int64),
		Transactions:  make([]TransactionRecord, 0, len(transactions)),
	}

	categoryTotals := make(map[string]int64)
	var categoryOrder []string

	for _, tx := range transactions {
		switch tx.Type {
		case models.TransactionTypeIncome:
			window.TotalIncome += tx.Amount
		case models.TransactionTypeExpense:
			window.TotalExpense += tx.Amount

			name := tx.Category.Name
			if _, seen := categoryTotals[name]; !seen {
				categoryOrder = append(categoryOrder, name)
			}
			categoryTotals[name] += tx.Amount

			window.DailyExpenses[tx.Date.Weekday().String()] += tx.Amount
		}

		window.Transactions = append(window.Transactions, TransactionRecord{
			Date:        tx.Date.Format("2006-01-02"),
			Amount:      tx.Amount,
			Type:        string(tx.Type),
			Description: tx.Description,
			Category:    tx.Category.Name,
			Notes:       tx.Notes,
		})
	}

	window.NetBalance = window.TotalIncome - window.TotalExpense
	window.TransactionCount = len(transactions)
	window.TopExpenseCategories = rankCategories(categoryTotals, categoryOrder, defaultTopCategories)

	return window, nil
}

// rankCategories sorts category totals descending by amount. The sort is
// stable over first-encountered order so ties keep their original position.
func rankCategories(totals map[string]int64, order []string, limit int) []CategoryAmount {
	ranked := make([]CategoryAmount, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, CategoryAmount{Category: name, Amount: totals[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount > ranked[j].Amount
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
