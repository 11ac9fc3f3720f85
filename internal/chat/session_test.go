package chat

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

func TestSessionStore_Append(t *testing.T) {
	t.Run("records turns in order", func(t *testing.T) {
		store := NewSessionStore()
		store.Append(1, RoleUser, "hello")
		store.Append(1, RoleAssistant, "hi there")

		history := store.History(1)
		if len(history) != 2 {
			t.Fatalf("expected 2 turns, got %d", len(history))
		}
		if history[0].Role != RoleUser || history[0].Message != "hello" {
			t.Errorf("unexpected first turn: %+v", history[0])
		}
		if history[1].Role != RoleAssistant {
			t.Errorf("unexpected second turn: %+v", history[1])
		}
	})

	t.Run("evicts oldest turns beyond the bound", func(t *testing.T) {
		store := NewSessionStore()
		for i := 0; i < maxHistoryEntries+4; i++ {
			store.Append(1, RoleUser, fmt.Sprintf("message %d", i))
		}

		history := store.History(1)
		if len(history) != maxHistoryEntries {
			t.Fatalf("expected %d turns, got %d", maxHistoryEntries, len(history))
		}
		if history[0].Message != "message 4" {
			t.Errorf("expected oldest surviving turn to be message 4, got %q", history[0].Message)
		}
		if history[len(history)-1].Message != fmt.Sprintf("message %d", maxHistoryEntries+3) {
			t.Errorf("unexpected newest turn: %q", history[len(history)-1].Message)
		}
	})

	t.Run("keeps users isolated", func(t *testing.T) {
		store := NewSessionStore()
		store.Append(1, RoleUser, "user one")
		store.Append(2, RoleUser, "user two")

		if len(store.History(1)) != 1 || len(store.History(2)) != 1 {
			t.Errorf("histories leaked across users")
		}
	})
}

func TestSessionStore_Clear(t *testing.T) {
	store := NewSessionStore()
	store.Append(1, RoleUser, "hello")
	store.Clear(1)

	if len(store.History(1)) != 0 {
		t.Errorf("expected empty history after clear")
	}
}

func TestSessionStore_FormatForPrompt(t *testing.T) {
	t.Run("empty history renders nothing", func(t *testing.T) {
		store := NewSessionStore()
		if got := store.FormatForPrompt(1); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})

	t.Run("labels user and assistant turns", func(t *testing.T) {
		store := NewSessionStore()
		store.Append(1, RoleUser, "hello")
		store.Append(1, RoleAssistant, "hi, I'm Fin")

		formatted := store.FormatForPrompt(1)
		if !strings.Contains(formatted, "User: hello") {
			t.Errorf("missing user line in %q", formatted)
		}
		if !strings.Contains(formatted, "Fin: hi, I'm Fin") {
			t.Errorf("missing assistant line in %q", formatted)
		}
		if !strings.Contains(formatted, "Earlier conversation:") {
			t.Errorf("missing header in %q", formatted)
		}
	})
}

func TestSessionStore_ConcurrentAppend(t *testing.T) {
	store := NewSessionStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			store.Append(uint(n%4), RoleUser, "concurrent")
		}(i)
	}
	wg.Wait()

	total := 0
	for uid := uint(0); uid < 4; uid++ {
		total += len(store.History(uid))
	}
	if total != 20 {
		t.Errorf("expected 20 turns across users, got %d", total)
	}
}
