package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moneyflow/internal/chat"
	apperrors "moneyflow/internal/errors"
)

// ChatHandler handles financial advisor chat requests
type ChatHandler struct {
	advisor    *chat.Advisor
	aggregator *chat.Aggregator
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(advisor *chat.Advisor, aggregator *chat.Aggregator) *ChatHandler {
	return &ChatHandler{advisor: advisor, aggregator: aggregator}
}

// ChatRequest represents one inbound chat message
type ChatRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
	Days    int    `json:"days" binding:"omitempty,min=1,max=365"`
}

// Chat handles one chat exchange with the advisor
// @Summary     Chat with the advisor
// @Description Send a message to the financial advisor and get a reply. Data questions include a financial summary.
// @Tags        chatbot
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ChatRequest true "Chat message and optional lookback in days (default 30)"
// @Success     200 {object} chat.ChatResult "Advisor reply"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     429 {object} ErrorResponse "Rate limit exceeded"
// @Router      /chatbot/chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result := h.advisor.Chat(c.Request.Context(), userID, req.Message, chat.ClampDays(req.Days))
	c.JSON(http.StatusOK, result)
}

// FinancialSummary returns the aggregated financial window
// @Summary     Financial window
// @Description Get the aggregated financial window the advisor sees for a lookback period
// @Tags        chatbot
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       days query int false "Lookback in days (default 30, max 365)"
// @Success     200 {object} chat.FinancialWindow "Aggregated window"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /chatbot/financial-summary [get]
func (h *ChatHandler) FinancialSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	days := chat.ClampDays(queryInt(c, "days", chat.DefaultWindowDays))
	window, err := h.aggregator.FinancialData(c.Request.Context(), userID, days)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, window)
}

// SpendingAnalysis returns the rule-based spending analysis
// @Summary     Spending analysis
// @Description Get the rule-based spending pattern analysis and budget recommendations
// @Tags        chatbot
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       days query int false "Lookback in days (default 30, max 365)"
// @Success     200 {object} map[string]string "Analysis and recommendations"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /chatbot/spending-analysis [get]
func (h *ChatHandler) SpendingAnalysis(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	days := chat.ClampDays(queryInt(c, "days", chat.DefaultWindowDays))
	window, err := h.aggregator.FinancialData(c.Request.Context(), userID, days)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analysis":        chat.AnalyzeSpendingPatterns(window),
		"recommendations": chat.BudgetRecommendations(window),
		"period":          window.Period,
	})
}

// QuickAdvice returns short money tips from the user's recent data
// @Summary     Quick advice
// @Description Get a few short money tips generated from the user's recent transactions
// @Tags        chatbot
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       days query int false "Lookback in days (default 30, max 365)"
// @Success     200 {object} map[string]string "Advice text"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     429 {object} ErrorResponse "Rate limit exceeded"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /chatbot/quick-advice [get]
func (h *ChatHandler) QuickAdvice(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	days := chat.ClampDays(queryInt(c, "days", chat.DefaultWindowDays))
	advice, err := h.advisor.QuickAdvice(c.Request.Context(), userID, days)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"advice": advice})
}

// ClearHistory drops the user's conversation history
// @Summary     Clear chat history
// @Description Drop the authenticated user's stored conversation history
// @Tags        chatbot
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]string "History cleared"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /chatbot/clear-history [post]
func (h *ChatHandler) ClearHistory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.advisor.ClearHistory(userID)
	c.JSON(http.StatusOK, gin.H{"message": "History cleared"})
}
