package focus

import (
	"math/rand"
	"testing"
	"time"

	"github.com/taskwise-ai/taskwise/internal/storage"
	"github.com/taskwise-ai/taskwise/internal/task"
)

var day1 = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func testSelector(t *testing.T, now time.Time) (*Selector, *storage.Storage) {
	t.Helper()
	st, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	sel := NewWith(st, rand.New(rand.NewSource(1)), func() time.Time { return now })
	return sel, st
}

func incompleteTask(id string, p task.Priority) *task.Task {
	return &task.Task{ID: id, Title: id, Priority: p}
}

func completedTask(id string, p task.Priority) *task.Task {
	done := day1
	return &task.Task{ID: id, Title: id, Priority: p, Completed: true, CompletedAt: &done}
}

func TestPickPrefersHighPriority(t *testing.T) {
	sel, _ := testSelector(t, day1)
	tasks := []*task.Task{
		incompleteTask("low", task.PriorityLow),
		incompleteTask("med", task.PriorityMedium),
		incompleteTask("high", task.PriorityHigh),
	}
	if got := sel.Pick(tasks); got != "high" {
		t.Errorf("Pick = %q, want the only high-priority task", got)
	}
}

func TestPickFallsBackToMediumThenAll(t *testing.T) {
	sel, _ := testSelector(t, day1)
	tasks := []*task.Task{
		incompleteTask("low", task.PriorityLow),
		incompleteTask("med", task.PriorityMedium),
		completedTask("high", task.PriorityHigh),
	}
	if got := sel.Pick(tasks); got != "med" {
		t.Errorf("Pick = %q, want the medium task when no high exists", got)
	}

	sel2, _ := testSelector(t, day1)
	onlyLow := []*task.Task{incompleteTask("low", task.PriorityLow)}
	if got := sel2.Pick(onlyLow); got != "low" {
		t.Errorf("Pick = %q, want the remaining low task", got)
	}
}

func TestPickIsStableWithinADay(t *testing.T) {
	sel, st := testSelector(t, day1)
	tasks := []*task.Task{
		incompleteTask("a", task.PriorityHigh),
		incompleteTask("b", task.PriorityHigh),
	}
	first := sel.Pick(tasks)
	for range 10 {
		if got := sel.Pick(tasks); got != first {
			t.Fatalf("Pick changed within the same day: %q then %q", first, got)
		}
	}

	// A fresh selector over the same storage sees the persisted pick.
	other := NewWith(st, rand.New(rand.NewSource(99)), func() time.Time { return day1 })
	if got := other.Pick(tasks); got != first {
		t.Errorf("persisted pick ignored: %q, want %q", got, first)
	}
}

func TestPickRollsOverOnNewDay(t *testing.T) {
	sel, st := testSelector(t, day1)
	tasks := []*task.Task{incompleteTask("a", task.PriorityHigh)}
	sel.Pick(tasks)

	var rec Record
	if ok, _ := st.Get(storage.KeyTaskOfDay, &rec); !ok || rec.Date != "2026-03-10" {
		t.Fatalf("persisted record = %+v", rec)
	}

	// Next day, a different collection: yesterday's record must not pin.
	day2 := day1.Add(24 * time.Hour)
	sel2 := NewWith(st, rand.New(rand.NewSource(7)), func() time.Time { return day2 })
	tasks2 := []*task.Task{incompleteTask("b", task.PriorityHigh), completedTask("a", task.PriorityHigh)}
	if got := sel2.Pick(tasks2); got != "b" {
		t.Errorf("Pick on new day = %q, want b", got)
	}
	if ok, _ := st.Get(storage.KeyTaskOfDay, &rec); !ok || rec.Date != "2026-03-11" || rec.ID != "b" {
		t.Errorf("record not rolled over: %+v", rec)
	}
}

func TestPickReplacesInvalidatedSelection(t *testing.T) {
	sel, _ := testSelector(t, day1)
	a := incompleteTask("a", task.PriorityHigh)
	b := incompleteTask("b", task.PriorityMedium)
	if got := sel.Pick([]*task.Task{a, b}); got != "a" {
		t.Fatalf("initial pick = %q, want a", got)
	}

	// Completing the focus task hands focus to the next pool.
	if got := sel.Pick([]*task.Task{completedTask("a", task.PriorityHigh), b}); got != "b" {
		t.Errorf("pick after completion = %q, want b", got)
	}

	// Deleting it behaves the same.
	sel2, _ := testSelector(t, day1)
	if got := sel2.Pick([]*task.Task{a, b}); got != "a" {
		t.Fatalf("initial pick = %q, want a", got)
	}
	if got := sel2.Pick([]*task.Task{b}); got != "b" {
		t.Errorf("pick after deletion = %q, want b", got)
	}
}

func TestPickClearsWhenNothingIncomplete(t *testing.T) {
	sel, st := testSelector(t, day1)
	sel.Pick([]*task.Task{incompleteTask("a", task.PriorityLow)})

	if got := sel.Pick([]*task.Task{completedTask("a", task.PriorityLow)}); got != "" {
		t.Errorf("Pick = %q, want empty with all tasks done", got)
	}
	var rec Record
	if ok, _ := st.Get(storage.KeyTaskOfDay, &rec); ok {
		t.Error("record not cleared when nothing is incomplete")
	}
}

func TestReroll(t *testing.T) {
	sel, _ := testSelector(t, day1)
	tasks := []*task.Task{
		incompleteTask("a", task.PriorityHigh),
		incompleteTask("b", task.PriorityHigh),
		incompleteTask("c", task.PriorityHigh),
	}
	first := sel.Pick(tasks)

	seen := map[string]bool{first: true}
	for range 20 {
		seen[sel.Reroll(tasks)] = true
	}
	if len(seen) < 2 {
		t.Error("20 re-rolls never chose a different task")
	}

	// The re-rolled pick is pinned like any other.
	last := sel.Pick(tasks)
	if got := sel.Pick(tasks); got != last {
		t.Errorf("pick unstable after reroll: %q then %q", last, got)
	}
}
