package task

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taskwise-ai/taskwise/internal/clierr"
)

// Editing-policy caps, enforced at the command boundary rather than by the
// store: a state file written by another tool may exceed them.
const (
	MaxTags     = 5
	MaxSubtasks = 10
)

// Sentinel errors for model invariant violations.
var (
	ErrInvalidPriority = errors.New("task: invalid priority")
	ErrCompletedAt     = errors.New("task: completedAt must be set exactly when completed")
)

// Validate checks the model invariants: non-empty id and title, a known
// priority, the completed/completedAt pairing, and unique subtask ids.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("task: id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("task: title is required")
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.Completed != (t.CompletedAt != nil) {
		return ErrCompletedAt
	}
	seen := make(map[string]bool, len(t.Subtasks))
	for _, s := range t.Subtasks {
		if seen[s.ID] {
			return fmt.Errorf("task: duplicate subtask id %q", s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}

// ValidatePriority checks a priority string from user input.
func ValidatePriority(p string) error {
	if Priority(p).IsValid() {
		return nil
	}
	return clierr.Newf(clierr.InvalidPriority, "invalid priority %q", p).
		WithDetails(map[string]any{
			"priority": p,
			"allowed":  []Priority{PriorityLow, PriorityMedium, PriorityHigh},
		})
}

// ValidateTagCap enforces the tag cap on edited tag sets.
func ValidateTagCap(tags []string) error {
	if len(tags) <= MaxTags {
		return nil
	}
	return clierr.Newf(clierr.TagLimit, "at most %d tags allowed (got %d)", MaxTags, len(tags)).
		WithDetails(map[string]any{"max": MaxTags, "got": len(tags)})
}

// ValidateSubtaskCap enforces the subtask cap when adding subtasks.
func ValidateSubtaskCap(count int) error {
	if count <= MaxSubtasks {
		return nil
	}
	return clierr.Newf(clierr.SubtaskLimit, "at most %d subtasks allowed (got %d)", MaxSubtasks, count).
		WithDetails(map[string]any{"max": MaxSubtasks, "got": count})
}

// NotFound returns the canonical error for an unknown task id.
func NotFound(id string) *clierr.Error {
	return clierr.Newf(clierr.TaskNotFound, "task not found: %s", id).
		WithDetails(map[string]any{"id": id})
}

// SubtaskNotFound returns the canonical error for an unknown subtask id.
func SubtaskNotFound(taskID, subtaskID string) *clierr.Error {
	return clierr.Newf(clierr.SubtaskNotFound, "subtask %s not found on task %s", subtaskID, taskID).
		WithDetails(map[string]any{"task_id": taskID, "subtask_id": subtaskID})
}

// FormatDate returns a CLIError for invalid date input.
func FormatDate(field, input string, err error) *clierr.Error {
	return clierr.Newf(clierr.InvalidDate, "invalid %s date: %v", field, err).
		WithDetails(map[string]any{"field": field, "input": input})
}
