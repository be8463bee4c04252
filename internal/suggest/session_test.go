package suggest

import (
	"testing"

	"github.com/taskwise-ai/taskwise/internal/storage"
)

func testStorage(t *testing.T) *storage.Storage {
	t.Helper()
	st, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func TestSessionLifecycle(t *testing.T) {
	st := testStorage(t)

	// Empty before anything is staged.
	s, err := LoadSession(st, "t1")
	if err != nil {
		t.Fatal(err)
	}
	if !s.Empty() {
		t.Fatal("fresh session not empty")
	}

	if err := StageSession(st, "t1", Staging{SuggestedEmoji: "🛒"}); err != nil {
		t.Fatal(err)
	}
	if err := StageSession(st, "t1", Staging{SuggestedTagline: "Go go go"}); err != nil {
		t.Fatal(err)
	}

	s, err = LoadSession(st, "t1")
	if err != nil {
		t.Fatal(err)
	}
	if s.SuggestedEmoji != "🛒" || s.SuggestedTagline != "Go go go" {
		t.Errorf("staged = %+v, want both fields merged", s)
	}

	if err := ClearSession(st, "t1"); err != nil {
		t.Fatal(err)
	}
	s, _ = LoadSession(st, "t1")
	if !s.Empty() {
		t.Error("session survived clear")
	}
}

func TestSessionsAreIsolatedPerTask(t *testing.T) {
	st := testStorage(t)
	if err := StageSession(st, "t1", Staging{SuggestedEmoji: "🛒"}); err != nil {
		t.Fatal(err)
	}
	if err := StageSession(st, NewTaskKey, Staging{SuggestedEmoji: "🚀"}); err != nil {
		t.Fatal(err)
	}

	s1, _ := LoadSession(st, "t1")
	sNew, _ := LoadSession(st, NewTaskKey)
	if s1.SuggestedEmoji != "🛒" || sNew.SuggestedEmoji != "🚀" {
		t.Errorf("slots leaked: t1=%q new=%q", s1.SuggestedEmoji, sNew.SuggestedEmoji)
	}

	// Clearing one slot leaves the other alone.
	if err := ClearSession(st, "t1"); err != nil {
		t.Fatal(err)
	}
	sNew, _ = LoadSession(st, NewTaskKey)
	if sNew.SuggestedEmoji != "🚀" {
		t.Error("clearing t1 also cleared the new-task slot")
	}
}

func TestClearLastSessionRemovesKey(t *testing.T) {
	st := testStorage(t)
	if err := StageSession(st, "t1", Staging{SuggestedEmoji: "🛒"}); err != nil {
		t.Fatal(err)
	}
	if err := ClearSession(st, "t1"); err != nil {
		t.Fatal(err)
	}

	var raw any
	if ok, _ := st.Get(storage.KeySuggestions, &raw); ok {
		t.Error("state key still present after the last session was cleared")
	}
}

func TestClearSessionOnEmptyStorage(t *testing.T) {
	st := testStorage(t)
	if err := ClearSession(st, "missing"); err != nil {
		t.Errorf("clearing a missing session errored: %v", err)
	}
}
