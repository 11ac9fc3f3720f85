package chat

import (
	"context"
	"fmt"
	"strings"

	"moneyflow/internal/logger"
)

// SummaryPayload is the condensed financial summary attached to chat results
// for data-path questions.
type SummaryPayload struct {
	TotalIncome  int64  `json:"total_income"`
	TotalExpense int64  `json:"total_expense"`
	NetBalance   int64  `json:"net_balance"`
	Period       string `json:"period"`
}

// ChatResult is the outcome of one chat exchange. Response is always a
// non-empty user-visible string, even on total failure.
type ChatResult struct {
	Success          bool            `json:"success"`
	Response         string          `json:"response"`
	FinancialSummary *SummaryPayload `json:"financial_summary,omitempty"`
	Error            string          `json:"error,omitempty"`
}

// Advisor orchestrates a chat exchange: it classifies the message, decides
// whether the model needs tools, executes requested tools, and records the
// exchange. Every external failure is absorbed into a reply string; a
// conversation never fails hard.
type Advisor struct {
	gateway    Gateway
	aggregator *Aggregator
	dispatcher *Dispatcher
	sessions   *SessionStore
	decls      []ToolDeclaration
}

// NewAdvisor wires an Advisor from its collaborators.
func NewAdvisor(gateway Gateway, aggregator *Aggregator, sessions *SessionStore) *Advisor {
	return &Advisor{
		gateway:    gateway,
		aggregator: aggregator,
		dispatcher: NewDispatcher(aggregator),
		sessions:   sessions,
		decls:      ToolDeclarations(),
	}
}

// ClearHistory drops the user's conversation history.
func (a *Advisor) ClearHistory(userID uint) {
	a.sessions.Clear(userID)
}

// Chat handles one inbound message and returns the reply. The user turn is
// recorded before routing and the assistant turn after, whichever path the
// message takes. A financial summary is attached only when the message was
// classified as a data question.
func (a *Advisor) Chat(ctx context.Context, userID uint, message string, days int) ChatResult {
	a.sessions.Append(userID, RoleUser, message)

	response, failure := a.route(ctx, userID, message)

	a.sessions.Append(userID, RoleAssistant, response)

	result := ChatResult{Success: true, Response: response}
	if failure != nil {
		result.Success = false
		result.Error = failure.Error()
	}

	if IsFinanceRelated(message) && !IsGeneralQuestion(message) {
		window, err := a.aggregator.FinancialData(ctx, userID, days)
		if err != nil {
			logger.Get().Warnw("chat summary fetch failed", "user_id", userID, "error", err)
			return ChatResult{
				Success:  false,
				Error:    fmt.Sprintf("failed to load financial summary: %v", err),
				Response: response,
			}
		}
		result.FinancialSummary = &SummaryPayload{
			TotalIncome:  window.TotalIncome,
			TotalExpense: window.TotalExpense,
			NetBalance:   window.NetBalance,
			Period:       window.Period,
		}
	}

	return result
}

// QuickAdvice produces a short set of actionable tips from the user's recent
// window without a conversation. Model failures degrade to the rule-based
// analysis; only a storage failure is returned as an error.
func (a *Advisor) QuickAdvice(ctx context.Context, userID uint, days int) (string, error) {
	window, err := a.aggregator.FinancialData(ctx, userID, days)
	if err != nil {
		return "", err
	}

	if window.TransactionCount == 0 {
		return "Bạn chưa có giao dịch nào trong khoảng thời gian này. Hãy thêm thu chi để mình tư vấn nhé! 😊", nil
	}

	prompt := fmt.Sprintf(`%s

Financial data for the %s:
- Income: %s VND
- Expense: %s VND
- Balance: %s VND

Give exactly 3 short, concrete money tips based on this data. One line each.`,
		personaPrompt,
		window.Period,
		formatAmount(window.TotalIncome),
		formatAmount(window.TotalExpense),
		formatAmount(window.NetBalance),
	)

	text, err := a.gateway.Generate(ctx, prompt)
	if err != nil {
		logger.Get().Warnw("quick advice completion failed", "user_id", userID, "error", err)
		return AnalyzeSpendingPatterns(window) + "\n\n" + BudgetRecommendations(window), nil
	}
	return text, nil
}

// route picks the reply path for a message. The returned error is non-nil
// only for terminal failures where even the simplified fallback failed; the
// reply string is still usable in that case.
func (a *Advisor) route(ctx context.Context, userID uint, message string) (string, error) {
	if IsSimpleGreeting(message) {
		return greetingReply, nil
	}

	if IsGeneralQuestion(message) {
		return a.answerGeneral(ctx, userID, message), nil
	}

	return a.answerWithTools(ctx, userID, message)
}

// answerGeneral handles questions that need no user data: persona, prior
// conversation, and the message go out as one plain completion.
func (a *Advisor) answerGeneral(ctx context.Context, userID uint, message string) string {
	var b strings.Builder
	b.WriteString(personaPrompt)
	b.WriteString(a.sessions.FormatForPrompt(userID))
	b.WriteString("\n\nCurrent message: ")
	b.WriteString(message)
	b.WriteString("\n\nReply naturally, remember the conversation context, and keep it short.")

	text, err := a.gateway.Generate(ctx, b.String())
	if err != nil {
		logger.Get().Warnw("general completion failed", "user_id", userID, "error", err)
		return apologyReply
	}
	return text
}

// answerWithTools runs the tool-eligible path: a tools-enabled call, then
// dispatch plus a follow-up call if the model requested a tool. Any failure
// drops down to the simplified direct path.
func (a *Advisor) answerWithTools(ctx context.Context, userID uint, message string) (string, error) {
	prompt := fmt.Sprintf("%s\n\nQuestion: %s\n\nUse a tool if the question needs the user's own numbers; otherwise answer directly in 3-5 lines.", personaPrompt, message)

	reply, err := a.gateway.GenerateWithTools(ctx, prompt, a.decls)
	if err != nil {
		logger.Get().Warnw("tool-enabled completion failed", "user_id", userID, "error", err)
		return a.fallback(ctx, userID, message)
	}

	if reply.Call != nil {
		resultJSON := a.dispatcher.Execute(ctx, userID, reply.Call.Name, reply.Call.Args)

		final, err := a.gateway.GenerateToolFollowup(ctx, prompt, *reply.Call, resultJSON)
		if err != nil {
			logger.Get().Warnw("tool followup failed", "user_id", userID, "tool", reply.Call.Name, "error", err)
			return a.fallback(ctx, userID, message)
		}
		return final, nil
	}

	if reply.Text != "" {
		return reply.Text, nil
	}
	return a.fallback(ctx, userID, message)
}

// fallback is the simplified direct path: fetch a fixed 30-day window, build
// a compact data summary, and issue one plain completion. If even this
// fails, the reply is a literal error string and the error is surfaced to
// the caller as a terminal failure.
func (a *Advisor) fallback(ctx context.Context, userID uint, message string) (string, error) {
	window, err := a.aggregator.FinancialData(ctx, userID, DefaultWindowDays)
	if err != nil {
		return fmt.Sprintf("Xin lỗi, tôi gặp lỗi khi xử lý yêu cầu của bạn: %v", err), err
	}

	var top []string
	for i, entry := range window.TopExpenseCategories {
		if i == 3 {
			break
		}
		top = append(top, fmt.Sprintf("%s: %s", entry.Category, formatAmount(entry.Amount)))
	}

	prompt := fmt.Sprintf(`You are a financial expert. Based on this data:

Financial data for the %s:
- Income: %s VND
- Expense: %s VND
- Balance: %s VND

Top expenses: %s

Question: %s

Give short, useful advice.`,
		window.Period,
		formatAmount(window.TotalIncome),
		formatAmount(window.TotalExpense),
		formatAmount(window.NetBalance),
		strings.Join(top, ", "),
		message,
	)

	text, err := a.gateway.Generate(ctx, prompt)
	if err != nil {
		return fmt.Sprintf("Xin lỗi, tôi gặp lỗi khi xử lý yêu cầu của bạn: %v", err), err
	}
	return text, nil
}
