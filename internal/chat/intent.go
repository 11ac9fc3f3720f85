package chat

import "strings"

// Intent classification is deliberately keyword-based. Deterministic routing
// keeps small talk away from the model and the database, and the keyword
// lists are auditable in a way a classifier call is not. Users write in
// English or Vietnamese, so both token sets are matched.

var greetingTokens = []string{
	"hello", "hi", "hey", "good morning", "good evening",
	"chào", "xin chào", "chào bạn", "hế nhô", "hế lô", "alo",
}

var financeKeywords = []string{
	"money", "spend", "spending", "income", "expense", "save", "saving",
	"invest", "budget", "salary", "finance", "category", "transaction",
	"tiền", "chi", "thu", "tiêu", "tiết kiệm", "đầu tư", "thu nhập",
	"chi tiêu", "ngân sách", "lương", "tài chính", "quản lý", "phân tích",
	"danh mục", "giao dịch",
}

var generalKeywords = []string{
	"how do", "how to", "how can", "what is", "what are", "explain",
	"definition", "general advice", "should i",
	"làm sao", "làm thế nào", "cách nào", "phương pháp", "là gì",
	"giải thích", "định nghĩa", "lời khuyên chung", "nên làm gì", "tôi nên",
}

var dataKeywords = []string{
	"how much did i", "my income", "my spending", "analyze my spending",
	"my categories", "my data", "my transactions", "my top expenses",
	"chi bao nhiêu", "thu nhập của tôi", "phân tích chi tiêu của tôi",
	"top chi tiêu", "danh mục của tôi", "số liệu của tôi", "dữ liệu của tôi",
	"tháng này của tôi", "tháng trước của tôi",
}

// normalize lowercases the message and collapses runs of whitespace.
func normalize(message string) string {
	return strings.Join(strings.Fields(strings.ToLower(message)), " ")
}

func containsAny(message string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(message, kw) {
			return true
		}
	}
	return false
}

// IsSimpleGreeting reports whether the message is a short greeting. The word
// count bound keeps longer messages that merely open with a greeting out.
func IsSimpleGreeting(message string) bool {
	normalized := normalize(message)
	if len(strings.Fields(normalized)) > 3 {
		return false
	}
	return containsAny(normalized, greetingTokens)
}

// IsFinanceRelated reports whether the message touches the finance domain.
func IsFinanceRelated(message string) bool {
	return containsAny(normalize(message), financeKeywords)
}

// IsGeneralQuestion reports whether the message can be answered from general
// knowledge without touching the user's data. A data keyword always forces
// the data path, even when a general keyword is also present.
func IsGeneralQuestion(message string) bool {
	normalized := normalize(message)

	if !containsAny(normalized, financeKeywords) {
		return true
	}

	hasGeneral := containsAny(normalized, generalKeywords)
	hasData := containsAny(normalized, dataKeywords)

	return hasGeneral && !hasData
}
