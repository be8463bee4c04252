package board

import (
	"time"

	"github.com/taskwise-ai/taskwise/internal/date"
	"github.com/taskwise-ai/taskwise/internal/task"
)

// Month groups incomplete due tasks by day for one displayed month.
type Month struct {
	Year  int
	Month time.Month
	days  map[int][]*task.Task
}

// CalendarMonth buckets incomplete tasks with a due date in the given month
// into per-day groups. Tasks keep their incoming (filtered) order within a
// day. Completed tasks and tasks without a due date are skipped.
func CalendarMonth(tasks []*task.Task, year int, month time.Month) Month {
	m := Month{Year: year, Month: month, days: make(map[int][]*task.Task)}
	for _, t := range tasks {
		if t.Completed || t.DueDate == nil {
			continue
		}
		if t.DueDate.Year() != year || t.DueDate.Month() != month {
			continue
		}
		day := t.DueDate.Day()
		m.days[day] = append(m.days[day], t)
	}
	return m
}

// Marked reports whether the given day has at least one due task.
func (m Month) Marked(day int) bool {
	return len(m.days[day]) > 0
}

// Day returns the tasks due on the given day, in filtered order.
func (m Month) Day(day int) []*task.Task {
	return m.days[day]
}

// Days returns the number of days in the displayed month.
func (m Month) Days() int {
	return date.New(m.Year, m.Month+1, 0).Day()
}

// FirstWeekday returns the weekday of the first of the month.
func (m Month) FirstWeekday() time.Weekday {
	return date.New(m.Year, m.Month, 1).Weekday()
}
