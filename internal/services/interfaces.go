package services

import (
	"time"

	"moneyflow/internal/models"
	"moneyflow/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, fullName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	ChangePassword(userID uint, oldPassword, newPassword string) error
	UpdateProfile(userID uint, fullName string) (*models.User, error)
	DeactivateUser(userID uint) error
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)

	// Admin operations.
	ListUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	AdminUpdateUser(userID uint, update AdminUserUpdate) (*models.User, error)
	AdminStats() (*AdminStats, error)
}

// AdminUserUpdate holds optional admin-editable user fields.
type AdminUserUpdate struct {
	FullName *string
	IsActive *bool
	IsAdmin  *bool
}

// AdminStats aggregates counts for the admin dashboard.
type AdminStats struct {
	TotalUsers        int64 `json:"total_users"`
	ActiveUsers       int64 `json:"active_users"`
	AdminUsers        int64 `json:"admin_users"`
	TotalTransactions int64 `json:"total_transactions"`
	TotalCategories   int64 `json:"total_categories"`
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID uint, name string, categoryType models.CategoryType) (*models.Category, error)
	GetUserCategories(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetUserCategoriesByType(userID uint, categoryType models.CategoryType, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(userID, categoryID uint) (*models.Category, error)
	UpdateCategory(userID, categoryID uint, name string) (*models.Category, error)
	DeleteCategory(userID, categoryID uint) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	Type       *models.TransactionType
	CategoryID *uint
	Search     string
}

// TransactionUpdate holds optional fields for updating a transaction.
type TransactionUpdate struct {
	Amount      *int64
	Description *string
	Date        *time.Time
	Type        *models.TransactionType
	CategoryID  *uint
	Notes       *string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID, categoryID uint, transactionType models.TransactionType, amount int64, description, notes string, date time.Time) (*models.Transaction, error)
	GetUserTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID uint) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID uint, update TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID uint) error
}

// FinancialSummary holds totals for a date range.
type FinancialSummary struct {
	TotalIncome      int64     `json:"total_income"`
	TotalExpense     int64     `json:"total_expense"`
	Balance          int64     `json:"balance"`
	PeriodStart      time.Time `json:"period_start"`
	PeriodEnd        time.Time `json:"period_end"`
	TransactionCount int64     `json:"transaction_count"`
}

// CategoryBreakdown is one slice of the category pie chart.
type CategoryBreakdown struct {
	CategoryID   uint                   `json:"category_id"`
	CategoryName string                 `json:"category_name"`
	Amount       int64                  `json:"amount"`
	Percentage   float64                `json:"percentage"`
	Type         models.TransactionType `json:"type"`
}

// MonthlyComparison is one bar of the month-over-month chart.
type MonthlyComparison struct {
	Month        string `json:"month"`
	Year         int    `json:"year"`
	TotalIncome  int64  `json:"total_income"`
	TotalExpense int64  `json:"total_expense"`
	Balance      int64  `json:"balance"`
}

// TrendPoint is one point of the daily trend line.
type TrendPoint struct {
	Date   string                 `json:"date"`
	Amount int64                  `json:"amount"`
	Type   models.TransactionType `json:"type"`
}

// DashboardData combines all analytics views in one payload.
type DashboardData struct {
	Summary           FinancialSummary    `json:"summary"`
	CategoryBreakdown []CategoryBreakdown `json:"category_breakdown"`
	MonthlyComparison []MonthlyComparison `json:"monthly_comparison"`
	TrendData         []TrendPoint        `json:"trend_data"`
}

// AnalyticsServicer defines the contract for reporting queries.
type AnalyticsServicer interface {
	Summary(userID uint, start, end time.Time) (*FinancialSummary, error)
	CategoryBreakdown(userID uint, start, end time.Time, typeFilter *models.TransactionType) ([]CategoryBreakdown, error)
	MonthlyComparison(userID uint, months int) ([]MonthlyComparison, error)
	Trend(userID uint, start, end time.Time, typeFilter *models.TransactionType) ([]TrendPoint, error)
	Dashboard(userID uint, start, end *time.Time) (*DashboardData, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(actorID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
