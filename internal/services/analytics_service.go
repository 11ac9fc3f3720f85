package services

import (
	"sort"
	"time"

	"gorm.io/gorm"

	apperrors "moneyflow/internal/errors"
	"moneyflow/internal/models"
)

// analyticsService computes reporting aggregates over a user's transactions.
// Rows are fetched with one filtered query and grouped in Go so the numbers
// come out identical on postgres and the sqlite test database.
type analyticsService struct {
	db *gorm.DB
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(db *gorm.DB) AnalyticsServicer {
	return &analyticsService{db: db}
}

func (s *analyticsService) fetch(userID uint, start, end *time.Time, typeFilter *models.TransactionType) ([]models.Transaction, error) {
	query := s.db.Model(&models.Transaction{}).
		Preload("Category").
		Where("user_id = ?", userID)
	if start != nil {
		query = query.Where("date >= ?", *start)
	}
	if end != nil {
		query = query.Where("date <= ?", *end)
	}
	if typeFilter != nil {
		query = query.Where("type = ?", *typeFilter)
	}

	var transactions []models.Transaction
	if err := query.Order("date ASC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// Summary returns income/expense totals for a date range.
func (s *analyticsService) Summary(userID uint, start, end time.Time) (*FinancialSummary, error) {
	transactions, err := s.fetch(userID, &start, &end, nil)
	if err != nil {
		return nil, err
	}

	summary := &FinancialSummary{PeriodStart: start, PeriodEnd: end}
	for _, tx := range transactions {
		switch tx.Type {
		case models.TransactionTypeIncome:
			summary.TotalIncome += tx.Amount
		case models.TransactionTypeExpense:
			summary.TotalExpense += tx.Amount
		}
	}
	summary.Balance = summary.TotalIncome - summary.TotalExpense
	summary.TransactionCount = int64(len(transactions))
	return summary, nil
}

// CategoryBreakdown groups amounts by category for a date range. Percentages
// are relative to the combined total of the returned slices.
func (s *analyticsService) CategoryBreakdown(userID uint, start, end time.Time, typeFilter *models.TransactionType) ([]CategoryBreakdown, error) {
	transactions, err := s.fetch(userID, &start, &end, typeFilter)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		id     uint
		name   string
		txType models.TransactionType
		amount int64
	}

	buckets := make(map[uint]*bucket)
	var order []uint
	var total int64

	for _, tx := range transactions {
		b, ok := buckets[tx.CategoryID]
		if !ok {
			b = &bucket{id: tx.CategoryID, name: tx.Category.Name, txType: tx.Type}
			buckets[tx.CategoryID] = b
			order = append(order, tx.CategoryID)
		}
		b.amount += tx.Amount
		total += tx.Amount
	}

	breakdown := make([]CategoryBreakdown, 0, len(order))
	for _, id := range order {
		b := buckets[id]
		var percentage float64
		if total > 0 {
			percentage = float64(b.amount) / float64(total) * 100
		}
		breakdown = append(breakdown, CategoryBreakdown{
			CategoryID:   b.id,
			CategoryName: b.name,
			Amount:       b.amount,
			Percentage:   percentage,
			Type:         b.txType,
		})
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Amount > breakdown[j].Amount
	})
	return breakdown, nil
}

// MonthlyComparison returns per-month income/expense totals for the user's
// most recent months, in chronological order.
func (s *analyticsService) MonthlyComparison(userID uint, months int) ([]MonthlyComparison, error) {
	if months <= 0 {
		months = 6
	}

	transactions, err := s.fetch(userID, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	type key struct {
		year  int
		month time.Month
	}

	totals := make(map[key]*MonthlyComparison)
	var keys []key

	for _, tx := range transactions {
		k := key{tx.Date.Year(), tx.Date.Month()}
		entry, ok := totals[k]
		if !ok {
			entry = &MonthlyComparison{Month: k.month.String(), Year: k.year}
			totals[k] = entry
			keys = append(keys, k)
		}
		switch tx.Type {
		case models.TransactionTypeIncome:
			entry.TotalIncome += tx.Amount
		case models.TransactionTypeExpense:
			entry.TotalExpense += tx.Amount
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	// Keep only the most recent N months
	if len(keys) > months {
		keys = keys[len(keys)-months:]
	}

	comparison := make([]MonthlyComparison, 0, len(keys))
	for _, k := range keys {
		entry := totals[k]
		entry.Balance = entry.TotalIncome - entry.TotalExpense
		comparison = append(comparison, *entry)
	}
	return comparison, nil
}

// Trend returns per-day totals for a date range, ordered by date.
func (s *analyticsService) Trend(userID uint, start, end time.Time, typeFilter *models.TransactionType) ([]TrendPoint, error) {
	transactions, err := s.fetch(userID, &start, &end, typeFilter)
	if err != nil {
		return nil, err
	}

	type key struct {
		date   string
		txType models.TransactionType
	}

	totals := make(map[key]int64)
	var keys []key

	for _, tx := range transactions {
		k := key{tx.Date.Format("2006-01-02"), tx.Type}
		if _, ok := totals[k]; !ok {
			keys = append(keys, k)
		}
		totals[k] += tx.Amount
	}

	trend := make([]TrendPoint, 0, len(keys))
	for _, k := range keys {
		trend = append(trend, TrendPoint{Date: k.date, Amount: totals[k], Type: k.txType})
	}
	return trend, nil
}

// Dashboard combines summary, breakdown, monthly comparison and trend in one
// payload. Without an explicit range it covers the user's whole history.
func (s *analyticsService) Dashboard(userID uint, start, end *time.Time) (*DashboardData, error) {
	transactions, err := s.fetch(userID, start, end, nil)
	if err != nil {
		return nil, err
	}

	// Display range: the requested one, or the actual span of the data.
	displayStart := time.Now()
	displayEnd := displayStart
	if len(transactions) > 0 {
		displayStart = transactions[0].Date
		displayEnd = transactions[len(transactions)-1].Date
	}
	if start != nil {
		displayStart = *start
	}
	if end != nil {
		displayEnd = *end
	}

	summary, err := s.Summary(userID, displayStart, displayEnd)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.CategoryBreakdown(userID, displayStart, displayEnd, nil)
	if err != nil {
		return nil, err
	}

	comparison, err := s.MonthlyComparison(userID, 6)
	if err != nil {
		return nil, err
	}

	trend, err := s.Trend(userID, displayStart, displayEnd, nil)
	if err != nil {
		return nil, err
	}

	return &DashboardData{
		Summary:           *summary,
		CategoryBreakdown: breakdown,
		MonthlyComparison: comparison,
		TrendData:         trend,
	}, nil
}
