package chat

import (
	"fmt"
	"strings"
)

// AnalyzeSpendingPatterns produces a qualitative reading of a financial
// window: the overall balance, the heaviest expense category, and an
// observation about transaction frequency.
func AnalyzeSpendingPatterns(window *FinancialWindow) string {
	var lines []string

	switch {
	case window.NetBalance > 0:
		lines = append(lines, fmt.Sprintf("[+] You have a surplus of %s VND over the %s", formatAmount(window.NetBalance), window.Period))
	case window.NetBalance < 0:
		lines = append(lines, fmt.Sprintf("[-] You are spending %s VND beyond your income over the %s", formatAmount(-window.NetBalance), window.Period))
	default:
		lines = append(lines, fmt.Sprintf("[=] Your income and spending are balanced over the %s", window.Period))
	}

	if len(window.TopExpenseCategories) > 0 {
		top := window.TopExpenseCategories[0]
		lines = append(lines, fmt.Sprintf("[TOP] Largest expense category: %s (%s VND)", top.Category, formatAmount(top.Amount)))
	}

	// Frequency is measured against the actual window length, not a fixed
	// 30-day divisor, so short windows do not look artificially quiet.
	avgDaily := float64(window.TransactionCount) / float64(window.Days)
	if avgDaily > 5 {
		lines = append(lines, "[INFO] You record transactions very frequently; consider consolidating small purchases")
	} else if avgDaily < 1 {
		lines = append(lines, "[INFO] Transaction frequency is low; you may be missing some entries")
	}

	return strings.Join(lines, "\n")
}

// BudgetRecommendations rates the expense-to-income ratio and flags a single
// category that dominates income.
func BudgetRecommendations(window *FinancialWindow) string {
	if window.TotalIncome == 0 {
		return "No income data available for budget recommendations."
	}

	expenseRatio := float64(window.TotalExpense) / float64(window.TotalIncome)

	var lines []string
	switch {
	case expenseRatio > 0.9:
		lines = append(lines, "[WARNING] You are spending over 90% of your income. Cut back now!")
	case expenseRatio > 0.8:
		lines = append(lines, "[WARNING] You are spending over 80% of your income. Try to save more.")
	case expenseRatio < 0.5:
		lines = append(lines, "[GOOD] Excellent! You are saving more than half of your income. Keep it up!")
	default:
		lines = append(lines, "[OK] Your spending ratio is at a reasonable level.")
	}

	if len(window.TopExpenseCategories) > 0 {
		top := window.TopExpenseCategories[0]
		categoryRatio := float64(top.Amount) / float64(window.TotalIncome)
		if categoryRatio > 0.3 {
			lines = append(lines, fmt.Sprintf("[TIP] The '%s' category takes %.1f%% of your income. Consider trimming it.", top.Category, categoryRatio*100))
		}
	}

	return strings.Join(lines, "\n")
}

// formatAmount renders an amount with thousands separators, e.g. 1,250,000.
func formatAmount(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte(',')
		}
	}
	return b.String()
}
