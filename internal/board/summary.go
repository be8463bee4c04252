package board

import (
	"time"

	"github.com/taskwise-ai/taskwise/internal/date"
	"github.com/taskwise-ai/taskwise/internal/task"
)

// ColumnCount holds a per-column task count for the board overview.
type ColumnCount struct {
	Column string `json:"column"`
	Count  int    `json:"count"`
}

// Overview is the aggregate stats dashboard for the collection.
type Overview struct {
	TotalTasks     int           `json:"total_tasks"`
	Incomplete     int           `json:"incomplete"`
	Completed      int           `json:"completed"`
	CompletedToday int           `json:"completed_today"`
	Overdue        int           `json:"overdue"`
	DueToday       int           `json:"due_today"`
	Columns        []ColumnCount `json:"columns"`
}

// Summary computes the board overview from all tasks as of now.
func Summary(tasks []*task.Task, now time.Time) Overview {
	today := date.FromTime(now)
	counts := make(map[string]int, len(task.Priorities)+1)

	o := Overview{TotalTasks: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			o.Completed++
			counts[ColumnCompleted]++
			if t.CompletedAt != nil && date.FromTime(*t.CompletedAt).Equal(today) {
				o.CompletedToday++
			}
			continue
		}
		o.Incomplete++
		counts[string(t.Priority)]++
		if t.DueDate != nil {
			switch {
			case t.DueDate.Equal(today):
				o.DueToday++
			case t.DueDate.Before(today.Time):
				o.Overdue++
			}
		}
	}

	for _, key := range ColumnKeys() {
		o.Columns = append(o.Columns, ColumnCount{Column: key, Count: counts[key]})
	}
	return o
}
