package board

import (
	"sort"
	"time"

	"github.com/taskwise-ai/taskwise/internal/task"
)

// ColumnCompleted is the kanban column holding all completed tasks,
// regardless of their original priority.
const ColumnCompleted = "completed"

// Column is one kanban column with its tasks in display order.
type Column struct {
	Key   string // "high", "medium", "low", or ColumnCompleted
	Tasks []*task.Task
}

// ColumnKeys returns the fixed kanban column order.
func ColumnKeys() []string {
	keys := make([]string, 0, len(task.Priorities)+1)
	for _, p := range task.Priorities {
		keys = append(keys, string(p))
	}
	return append(keys, ColumnCompleted)
}

// Kanban buckets tasks into the four fixed columns. Incomplete tasks go to
// their priority column, ordered focus-first then newest-created first; all
// completed tasks go to the completed column, ordered most-recently-completed
// first with UpdatedAt as the fallback. The input is not mutated.
func Kanban(tasks []*task.Task, focusID string) []Column {
	buckets := map[string][]*task.Task{}
	for _, t := range tasks {
		key := string(t.Priority)
		if t.Completed {
			key = ColumnCompleted
		}
		buckets[key] = append(buckets[key], t)
	}

	columns := make([]Column, 0, len(task.Priorities)+1)
	for _, key := range ColumnKeys() {
		col := Column{Key: key, Tasks: buckets[key]}
		if key == ColumnCompleted {
			sortCompleted(col.Tasks)
		} else {
			sortForDisplay(col.Tasks, focusID)
		}
		columns = append(columns, col)
	}
	return columns
}

// sortCompleted orders completed tasks most-recently-finished first.
func sortCompleted(tasks []*task.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return completionTime(tasks[i]).After(completionTime(tasks[j]))
	})
}

func completionTime(t *task.Task) time.Time {
	if t.CompletedAt != nil {
		return *t.CompletedAt
	}
	return t.UpdatedAt
}
