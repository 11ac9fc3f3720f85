package chat

import "testing"

func TestIsSimpleGreeting(t *testing.T) {
	cases := []struct {
		name    string
		message string
		want    bool
	}{
		{"english hello", "Hello", true},
		{"english hi with noise", "hi there", true},
		{"vietnamese greeting", "xin chào", true},
		{"vietnamese casual", "chào bạn", true},
		{"too many words", "hello can you help me with my budget", false},
		{"four words with greeting", "hi how are you", false},
		{"not a greeting", "what is a budget", false},
		{"mixed case and spacing", "  HELLO  ", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsSimpleGreeting(tc.message); got != tc.want {
				t.Errorf("IsSimpleGreeting(%q) = %v, want %v", tc.message, got, tc.want)
			}
		})
	}
}

func TestIsFinanceRelated(t *testing.T) {
	cases := []struct {
		name    string
		message string
		want    bool
	}{
		{"english spending", "how much did I spend on food", true},
		{"english budget", "What is a budget?", true},
		{"vietnamese spending", "Phân tích chi tiêu của tôi", true},
		{"vietnamese salary", "lương tháng này của tôi", true},
		{"unrelated", "what's the weather like today", false},
		{"small talk", "tell me a joke", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsFinanceRelated(tc.message); got != tc.want {
				t.Errorf("IsFinanceRelated(%q) = %v, want %v", tc.message, got, tc.want)
			}
		})
	}
}

func TestIsGeneralQuestion(t *testing.T) {
	cases := []struct {
		name    string
		message string
		want    bool
	}{
		// No finance keyword means the data path has nothing to fetch.
		{"non-finance is general", "tell me a joke", true},
		{"concept question is general", "What is a budget?", true},
		{"how-to is general", "how can I save money", true},
		{"vietnamese concept", "ngân sách là gì", true},
		// A data keyword forces the data path even with a general keyword.
		{"data overrides general", "how much did I spend on food?", false},
		{"vietnamese data request", "Phân tích chi tiêu của tôi", false},
		{"my income", "summarize my income please", false},
		// Finance keyword without a general keyword also takes the data path.
		{"plain finance statement", "spending this week was high", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsGeneralQuestion(tc.message); got != tc.want {
				t.Errorf("IsGeneralQuestion(%q) = %v, want %v", tc.message, got, tc.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	if got := normalize("  Hello   WORLD  "); got != "hello world" {
		t.Errorf("normalize collapsed to %q", got)
	}
}
