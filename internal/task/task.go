// Package task defines the task model and its validation rules.
package task

import (
	"time"

	"github.com/taskwise-ai/taskwise/internal/date"
)

// Priority is a task priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists all priorities from highest to lowest. The order is
// meaningful: kanban columns and focus candidate pools walk it front to back.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// IsValid reports whether p is a known priority.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Index returns the position of p in Priorities (high=0), or -1.
func (p Priority) Index() int {
	for i, q := range Priorities {
		if p == q {
			return i
		}
	}
	return -1
}

// Subtask is a checklist item owned by exactly one task.
type Subtask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Task is a user-defined unit of work. The JSON field names match the
// persisted format of the web app this tool grew out of, so an exported
// state file round-trips.
type Task struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Subtasks     []Subtask  `json:"subtasks"`
	Priority     Priority   `json:"priority"`
	DueDate      *date.Date `json:"dueDate,omitempty"`
	ReminderDate *date.Date `json:"reminderDate,omitempty"`
	Tags         []string   `json:"tags"`
	DelegatedTo  string     `json:"delegatedTo,omitempty"`
	ImageURL     string     `json:"imageUrl,omitempty"`
	DataAIHint   string     `json:"dataAiHint,omitempty"`
	TaskVibe     string     `json:"taskVibe,omitempty"`
	Completed    bool       `json:"completed"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Clone returns a deep copy. Mutating the copy never affects the original.
func (t *Task) Clone() *Task {
	c := *t
	c.Subtasks = append([]Subtask(nil), t.Subtasks...)
	c.Tags = append([]string(nil), t.Tags...)
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	if t.ReminderDate != nil {
		d := *t.ReminderDate
		c.ReminderDate = &d
	}
	if t.CompletedAt != nil {
		ts := *t.CompletedAt
		c.CompletedAt = &ts
	}
	return &c
}

// Subtask returns the subtask with the given id, or nil.
func (t *Task) Subtask(id string) *Subtask {
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == id {
			return &t.Subtasks[i]
		}
	}
	return nil
}

// SubtaskProgress returns the number of completed subtasks and the total.
func (t *Task) SubtaskProgress() (done, total int) {
	for _, s := range t.Subtasks {
		if s.Completed {
			done++
		}
	}
	return done, len(t.Subtasks)
}
