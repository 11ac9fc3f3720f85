package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "moneyflow/internal/errors"
	"moneyflow/internal/models"
	"moneyflow/internal/services"
)

// AnalyticsHandler handles reporting requests
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService services.AnalyticsServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// parseDateRange reads optional start_date/end_date query parameters,
// defaulting to the current calendar month.
func parseDateRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := now

	if v := c.Query("start_date"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return start, end, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid start_date format, use RFC3339 or YYYY-MM-DD")
		}
		start = t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return start, end, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid end_date format, use RFC3339 or YYYY-MM-DD")
		}
		end = t
	}
	if end.Before(start) {
		return start, end, apperrors.WithMessage(apperrors.ErrInvalidInput, "end_date must not precede start_date")
	}
	return start, end, nil
}

// parseTypeFilter reads an optional income/expense type query parameter.
func parseTypeFilter(c *gin.Context) (*models.TransactionType, error) {
	v := c.Query("type")
	if v == "" {
		return nil, nil
	}
	txType := models.TransactionType(v)
	if txType != models.TransactionTypeIncome && txType != models.TransactionTypeExpense {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid type, must be income or expense")
	}
	return &txType, nil
}

// Summary returns income/expense totals for a date range
// @Summary     Financial summary
// @Description Get income, expense, and balance totals for a date range (defaults to the current month)
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string false "Range start (RFC3339 or YYYY-MM-DD)"
// @Param       end_date   query string false "Range end (RFC3339 or YYYY-MM-DD)"
// @Success     200 {object} services.FinancialSummary "Summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	start, end, err := parseDateRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.analyticsService.Summary(userID, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// CategoryBreakdown returns per-category totals with percentages
// @Summary     Category breakdown
// @Description Get per-category totals and percentages for a date range
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string false "Range start (RFC3339 or YYYY-MM-DD)"
// @Param       end_date   query string false "Range end (RFC3339 or YYYY-MM-DD)"
// @Param       type       query string false "Filter by transaction type (income, expense)"
// @Success     200 {array} services.CategoryBreakdown "Breakdown entries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /analytics/category-breakdown [get]
func (h *AnalyticsHandler) CategoryBreakdown(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	start, end, err := parseDateRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	typeFilter, err := parseTypeFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	breakdown, err := h.analyticsService.CategoryBreakdown(userID, start, end, typeFilter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"breakdown": breakdown})
}

// MonthlyComparison returns month-over-month totals
// @Summary     Monthly comparison
// @Description Get income/expense totals for the last N months, oldest first
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       months query int false "Number of months to include (default 6, max 24)"
// @Success     200 {array} services.MonthlyComparison "Monthly totals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /analytics/monthly-comparison [get]
func (h *AnalyticsHandler) MonthlyComparison(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	months := 6
	if v := c.Query("months"); v != "" {
		n, convErr := strconv.Atoi(v)
		if convErr != nil || n < 1 || n > 24 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "months must be between 1 and 24"))
			return
		}
		months = n
	}

	comparison, err := h.analyticsService.MonthlyComparison(userID, months)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"months": comparison})
}

// Trend returns the daily income/expense series
// @Summary     Daily trend
// @Description Get per-day totals for a date range, oldest first
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string false "Range start (RFC3339 or YYYY-MM-DD)"
// @Param       end_date   query string false "Range end (RFC3339 or YYYY-MM-DD)"
// @Param       type       query string false "Filter by transaction type (income, expense)"
// @Success     200 {array} services.TrendPoint "Trend points"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /analytics/trend [get]
func (h *AnalyticsHandler) Trend(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	start, end, err := parseDateRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	typeFilter, err := parseTypeFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	trend, err := h.analyticsService.Trend(userID, start, end, typeFilter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trend": trend})
}

// Dashboard returns the combined analytics payload
// @Summary     Dashboard
// @Description Get summary, category breakdown, monthly comparison, and trend in one payload
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string false "Range start (RFC3339 or YYYY-MM-DD)"
// @Param       end_date   query string false "Range end (RFC3339 or YYYY-MM-DD)"
// @Success     200 {object} services.DashboardData "Dashboard data"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var start, end *time.Time
	if v := c.Query("start_date"); v != "" {
		t, parseErr := parseFlexibleTime(v)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid start_date format, use RFC3339 or YYYY-MM-DD"))
			return
		}
		start = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, parseErr := parseFlexibleTime(v)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid end_date format, use RFC3339 or YYYY-MM-DD"))
			return
		}
		end = &t
	}

	dashboard, err := h.analyticsService.Dashboard(userID, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
