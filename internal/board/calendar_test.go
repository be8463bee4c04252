package board

import (
	"testing"
	"time"

	"github.com/taskwise-ai/taskwise/internal/date"
	"github.com/taskwise-ai/taskwise/internal/task"
)

func withDue(t *task.Task, d date.Date) *task.Task {
	t.DueDate = &d
	return t
}

func TestCalendarMonthBuckets(t *testing.T) {
	inMonth := withDue(mk("in", "a", task.PriorityLow, 0), date.New(2026, time.March, 12))
	sameDay := withDue(mk("same", "b", task.PriorityLow, time.Hour), date.New(2026, time.March, 12))
	otherMonth := withDue(mk("other", "c", task.PriorityLow, 0), date.New(2026, time.April, 2))
	noDue := mk("nodue", "d", task.PriorityLow, 0)
	done := withDue(mk("done", "e", task.PriorityLow, 0), date.New(2026, time.March, 12))
	done.Completed = true
	completedAt := base
	done.CompletedAt = &completedAt

	m := CalendarMonth([]*task.Task{inMonth, sameDay, otherMonth, noDue, done}, 2026, time.March)

	if !m.Marked(12) {
		t.Fatal("day 12 not marked")
	}
	if !equalIDs(m.Day(12), "in", "same") {
		t.Errorf("day 12 = %v, want [in same]", ids(m.Day(12)))
	}
	if m.Marked(2) {
		t.Error("task from another month leaked in")
	}
	for d := 1; d <= m.Days(); d++ {
		if d != 12 && m.Marked(d) {
			t.Errorf("unexpected mark on day %d", d)
		}
	}
}

func TestCalendarMonthGeometry(t *testing.T) {
	m := CalendarMonth(nil, 2026, time.February)
	if m.Days() != 28 {
		t.Errorf("February 2026 days = %d, want 28", m.Days())
	}
	if m.FirstWeekday() != time.Sunday {
		t.Errorf("February 2026 starts on %s, want Sunday", m.FirstWeekday())
	}

	leap := CalendarMonth(nil, 2028, time.February)
	if leap.Days() != 29 {
		t.Errorf("February 2028 days = %d, want 29", leap.Days())
	}
}
