package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"moneyflow/internal/chat"
	"moneyflow/internal/models"
	"moneyflow/internal/testutil"
)

// staticGateway answers every completion with a fixed string and never
// requests a tool.
type staticGateway struct {
	reply string
}

var _ chat.Gateway = (*staticGateway)(nil)

func (g *staticGateway) Generate(_ context.Context, _ string) (string, error) {
	return g.reply, nil
}

func (g *staticGateway) GenerateWithTools(_ context.Context, _ string, _ []chat.ToolDeclaration) (*chat.ToolReply, error) {
	return &chat.ToolReply{Text: g.reply}, nil
}

func (g *staticGateway) GenerateToolFollowup(_ context.Context, _ string, _ chat.ToolCall, _ string) (string, error) {
	return g.reply, nil
}

func setupChatRouter(t *testing.T, reply string) (*gin.Engine, *gorm.DB, uint) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	user := testutil.CreateTestUser(t, db)

	aggregator := chat.NewAggregator(db)
	advisor := chat.NewAdvisor(&staticGateway{reply: reply}, aggregator, chat.NewSessionStore())
	handler := NewChatHandler(advisor, aggregator)

	r := gin.New()
	r.POST("/chatbot/chat", injectUserID(user.ID), handler.Chat)
	r.GET("/chatbot/financial-summary", injectUserID(user.ID), handler.FinancialSummary)
	r.GET("/chatbot/spending-analysis", injectUserID(user.ID), handler.SpendingAnalysis)
	r.GET("/chatbot/quick-advice", injectUserID(user.ID), handler.QuickAdvice)
	r.POST("/chatbot/clear-history", injectUserID(user.ID), handler.ClearHistory)
	return r, db, user.ID
}

func TestChatHandler_Chat(t *testing.T) {
	t.Run("returns the advisor reply", func(t *testing.T) {
		r, _, _ := setupChatRouter(t, "Save more, spend less.")

		rec := doRequest(r, "POST", "/chatbot/chat", `{"message":"How should I manage money?"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["success"] != true {
			t.Errorf("expected success true, got %v", result["success"])
		}
		if result["response"] != "Save more, spend less." {
			t.Errorf("unexpected response %v", result["response"])
		}
	})

	t.Run("attaches a summary on data questions", func(t *testing.T) {
		r, db, userID := setupChatRouter(t, "Here is your analysis.")
		income := testutil.CreateTestCategory(t, db, userID, models.CategoryTypeIncome)
		testutil.CreateTestTransaction(t, db, userID, income.ID, models.TransactionTypeIncome, 4_000_000)

		rec := doRequest(r, "POST", "/chatbot/chat", `{"message":"analyze my spending","days":30}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		summary, ok := result["financial_summary"].(map[string]interface{})
		if !ok {
			t.Fatalf("expected financial_summary, got %v", result)
		}
		if summary["total_income"] != float64(4_000_000) {
			t.Errorf("expected income 4000000, got %v", summary["total_income"])
		}
	})

	t.Run("returns 400 on empty message", func(t *testing.T) {
		r, _, _ := setupChatRouter(t, "unused")

		rec := doRequest(r, "POST", "/chatbot/chat", `{"message":""}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on out-of-range days", func(t *testing.T) {
		r, _, _ := setupChatRouter(t, "unused")

		rec := doRequest(r, "POST", "/chatbot/chat", `{"message":"hi","days":9999}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestChatHandler_FinancialSummary(t *testing.T) {
	r, db, userID := setupChatRouter(t, "unused")
	expense := testutil.CreateTestCategory(t, db, userID, models.CategoryTypeExpense)
	testutil.CreateTestTransaction(t, db, userID, expense.ID, models.TransactionTypeExpense, 250_000)

	rec := doRequest(r, "GET", "/chatbot/financial-summary?days=7", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["total_expense"] != float64(250_000) {
		t.Errorf("expected total_expense 250000, got %v", result["total_expense"])
	}
	if result["period"] != "last 7 days" {
		t.Errorf("unexpected period %v", result["period"])
	}
}

func TestChatHandler_SpendingAnalysis(t *testing.T) {
	r, db, userID := setupChatRouter(t, "unused")
	expense := testutil.CreateTestCategory(t, db, userID, models.CategoryTypeExpense)
	testutil.CreateTestTransaction(t, db, userID, expense.ID, models.TransactionTypeExpense, 250_000)

	rec := doRequest(r, "GET", "/chatbot/spending-analysis", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	analysis, _ := result["analysis"].(string)
	if analysis == "" {
		t.Error("expected a non-empty analysis")
	}
	if _, ok := result["recommendations"].(string); !ok {
		t.Error("expected recommendations text")
	}
}

func TestChatHandler_QuickAdvice(t *testing.T) {
	t.Run("returns model advice when data exists", func(t *testing.T) {
		r, db, userID := setupChatRouter(t, "1. Cook at home.")
		expense := testutil.CreateTestCategory(t, db, userID, models.CategoryTypeExpense)
		testutil.CreateTestTransaction(t, db, userID, expense.ID, models.TransactionTypeExpense, 250_000)

		rec := doRequest(r, "GET", "/chatbot/quick-advice", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["advice"] != "1. Cook at home." {
			t.Errorf("unexpected advice %v", result["advice"])
		}
	})

	t.Run("suggests adding data on an empty window", func(t *testing.T) {
		r, _, _ := setupChatRouter(t, "unused")

		rec := doRequest(r, "GET", "/chatbot/quick-advice", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		advice, _ := result["advice"].(string)
		if !strings.Contains(advice, "chưa có giao dịch") {
			t.Errorf("expected empty-window hint, got %q", advice)
		}
	})
}

func TestChatHandler_ClearHistory(t *testing.T) {
	r, _, _ := setupChatRouter(t, "ok")

	// Build up some history first
	doRequest(r, "POST", "/chatbot/chat", `{"message":"hello"}`)

	rec := doRequest(r, "POST", "/chatbot/clear-history", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["message"] != "History cleared" {
		t.Errorf("unexpected message %v", result["message"])
	}
}
