package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// ToolKind enumerates the data queries the model may request. Dispatch is a
// switch over this closed set rather than a lookup table keyed by raw
// strings, so a new tool has to be handled everywhere or the compiler and
// tests will catch it.
type ToolKind string

const (
	ToolFinancialSummary ToolKind = "financial_summary"
	ToolTopExpenses      ToolKind = "top_expenses"
	ToolCategoryExpense  ToolKind = "category_expense"
	ToolSpendingAnalysis ToolKind = "spending_analysis"
)

// ToolDeclarations returns the static registry of declared tools, in the
// order they are presented to the model.
func ToolDeclarations() []ToolDeclaration {
	return []ToolDeclaration{
		{
			Name:        string(ToolFinancialSummary),
			Description: "Get the user's financial summary: total income, total expense, net balance and transaction count over a period",
			Params: map[string]ParamSpec{
				"days": {Type: "integer", Description: "Number of days to look back (default 30)"},
			},
		},
		{
			Name:        string(ToolTopExpenses),
			Description: "Get the user's highest-spending expense categories",
			Params: map[string]ParamSpec{
				"days":  {Type: "integer", Description: "Number of days to look back (default 30)"},
				"limit": {Type: "integer", Description: "Number of categories to return (default 5)"},
			},
		},
		{
			Name:        string(ToolCategoryExpense),
			Description: "Get the user's total spending for one specific category",
			Params: map[string]ParamSpec{
				"category_name": {Type: "string", Description: "Category name to look up, e.g. 'Ăn uống', 'Di chuyển', 'Mua sắm'"},
				"days":          {Type: "integer", Description: "Number of days to look back (default 30)"},
			},
			Required: []string{"category_name"},
		},
		{
			Name:        string(ToolSpendingAnalysis),
			Description: "Analyze the user's spending patterns in detail and give budget recommendations",
			Params: map[string]ParamSpec{
				"days": {Type: "integer", Description: "Number of days to analyze (default 30)"},
			},
		},
	}
}

// Dispatcher executes declared tools against the aggregator on behalf of the
// model. Execute never returns an error: every failure is serialized into an
// error payload the model can still fold into its reply.
type Dispatcher struct {
	aggregator *Aggregator
}

// NewDispatcher creates a Dispatcher backed by the given aggregator.
func NewDispatcher(aggregator *Aggregator) *Dispatcher {
	return &Dispatcher{aggregator: aggregator}
}

// Execute runs the named tool with the given arguments for the user and
// returns the JSON-serialized result.
func (d *Dispatcher) Execute(ctx context.Context, userID uint, name string, args map[string]any) string {
	days := intArg(args, "days", DefaultWindowDays)

	switch ToolKind(name) {
	case ToolFinancialSummary:
		window, err := d.aggregator.FinancialData(ctx, userID, days)
		if err != nil {
			return errorPayload(err)
		}
		return marshalPayload(map[string]any{
			"total_income":      window.TotalIncome,
			"total_expense":     window.TotalExpense,
			"net_balance":       window.NetBalance,
			"transaction_count": window.TransactionCount,
			"period":            window.Period,
		})

	case ToolTopExpenses:
		limit := intArg(args, "limit", defaultTopCategories)
		window, err := d.aggregator.FinancialData(ctx, userID, days)
		if err != nil {
			return errorPayload(err)
		}
		top := window.TopExpenseCategories
		if limit > 0 && len(top) > limit {
			top = top[:limit]
		}
		return marshalPayload(map[string]any{"top_expenses": top})

	case ToolCategoryExpense:
		categoryName, _ := args["category_name"].(string)
		if categoryName == "" {
			return errorPayload(fmt.Errorf("category_name is required"))
		}
		window, err := d.aggregator.FinancialData(ctx, userID, days)
		if err != nil {
			return errorPayload(err)
		}
		// Substring match in either direction so "ăn" finds "Ăn uống" and
		// "Ăn uống ngoài" finds "Ăn uống".
		for _, entry := range window.TopExpenseCategories {
			if matchCategory(entry.Category, categoryName) {
				return marshalPayload(map[string]any{
					"category": entry.Category,
					"amount":   entry.Amount,
					"period":   window.Period,
				})
			}
		}
		return marshalPayload(map[string]any{
			"category": categoryName,
			"amount":   0,
			"message":  "No spending found for this category",
		})

	case ToolSpendingAnalysis:
		window, err := d.aggregator.FinancialData(ctx, userID, days)
		if err != nil {
			return errorPayload(err)
		}
		return marshalPayload(map[string]any{
			"analysis":        AnalyzeSpendingPatterns(window),
			"recommendations": BudgetRecommendations(window),
			"financial_data": map[string]any{
				"total_income":  window.TotalIncome,
				"total_expense": window.TotalExpense,
				"net_balance":   window.NetBalance,
			},
		})

	default:
		return marshalPayload(map[string]any{"error": fmt.Sprintf("Unknown tool: %s", name)})
	}
}

func matchCategory(category, query string) bool {
	c := strings.ToLower(category)
	q := strings.ToLower(query)
	return strings.Contains(c, q) || strings.Contains(q, c)
}

// intArg reads an integer argument that may arrive as JSON float64, int, or
// numeric string depending on how the model serialized it.
func intArg(args map[string]any, key string, fallback int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return fallback
}

func marshalPayload(payload map[string]any) string {
	data, err := json.Marshal(payload)
	if err != nil {
		return errorPayload(err)
	}
	return string(data)
}

func errorPayload(err error) string {
	data, mErr := json.Marshal(map[string]string{"error": err.Error()})
	if mErr != nil {
		return `{"error":"internal error"}`
	}
	return string(data)
}
