package chat

import (
	"strings"
	"sync"
)

// maxHistoryEntries bounds each user's history to the last 5 exchange pairs.
const maxHistoryEntries = 10

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single message in a user's conversation history.
type Turn struct {
	Role    Role   `json:"role"`
	Message string `json:"message"`
}

// SessionStore holds per-user conversation history for the lifetime of the
// process. All methods are safe for concurrent use; history is advisory
// context for prompts, not financial data, so a single lock suffices.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[uint][]Turn
}

// NewSessionStore creates an empty SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[uint][]Turn)}
}

// Append adds a turn to the user's history, evicting the oldest entries once
// the bound is exceeded.
func (s *SessionStore) Append(userID uint, role Role, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.sessions[userID], Turn{Role: role, Message: message})
	if len(history) > maxHistoryEntries {
		history = history[len(history)-maxHistoryEntries:]
	}
	s.sessions[userID] = history
}

// History returns a copy of the user's stored turns, empty if none.
func (s *SessionStore) History(userID uint) []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.sessions[userID]
	out := make([]Turn, len(history))
	copy(out, history)
	return out
}

// Clear resets the user's history.
func (s *SessionStore) Clear(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// FormatForPrompt renders the stored turns as a labeled transcript for
// inclusion in a generation prompt, or an empty string with no history.
func (s *SessionStore) FormatForPrompt(userID uint) string {
	history := s.History(userID)
	if len(history) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\nEarlier conversation:\n")
	for _, turn := range history {
		label := "User"
		if turn.Role == RoleAssistant {
			label = "Fin"
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(turn.Message)
		b.WriteString("\n")
	}
	return b.String()
}
