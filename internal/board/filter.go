// Package board provides the pure view-selection logic over task
// collections: filtering, ordering, and the per-view groupings.
package board

import (
	"sort"
	"strings"

	"github.com/taskwise-ai/taskwise/internal/task"
)

// PriorityAll disables priority filtering.
const PriorityAll = "all"

// Criteria defines which tasks to include. Zero values mean "no filter".
type Criteria struct {
	Search   string // case-insensitive substring match on title or description
	Priority string // "all"/"" or a specific priority
	DueDate  string // exact YYYY-MM-DD match
	Tags     string // comma-separated required tags (AND semantics)
}

// Apply filters and orders tasks for display. The input slice is never
// mutated. Ordering is deterministic: incomplete before completed, the focus
// task first within its completion group, then newest-created first.
func Apply(tasks []*task.Task, c Criteria, focusID string) []*task.Task {
	result := make([]*task.Task, 0, len(tasks))
	filterTags := splitTags(c.Tags)
	for _, t := range tasks {
		if matches(t, c, filterTags) {
			result = append(result, t)
		}
	}
	sortForDisplay(result, focusID)
	return result
}

func matches(t *task.Task, c Criteria, filterTags []string) bool {
	if c.Search != "" {
		term := strings.ToLower(c.Search)
		if !strings.Contains(strings.ToLower(t.Title), term) &&
			!strings.Contains(strings.ToLower(t.Description), term) {
			return false
		}
	}
	if c.Priority != "" && c.Priority != PriorityAll && string(t.Priority) != c.Priority {
		return false
	}
	if c.DueDate != "" {
		if t.DueDate == nil || t.DueDate.String() != c.DueDate {
			return false
		}
	}
	if len(filterTags) > 0 && !hasAllTags(t, filterTags) {
		return false
	}
	return true
}

// splitTags normalizes a comma-separated tag filter: trimmed, lowercased,
// empties dropped.
func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(strings.ToLower(s), ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// hasAllTags reports whether the task carries every filter tag,
// case-insensitively. AND semantics: one missing tag excludes the task.
func hasAllTags(t *task.Task, filterTags []string) bool {
	have := make(map[string]bool, len(t.Tags))
	for _, tag := range t.Tags {
		have[strings.ToLower(tag)] = true
	}
	for _, ft := range filterTags {
		if !have[ft] {
			return false
		}
	}
	return true
}

// sortForDisplay orders tasks in place: incomplete first, focus task first
// within the same completion status, then newest CreatedAt first.
func sortForDisplay(tasks []*task.Task, focusID string) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		if focusID != "" && a.ID != b.ID {
			if a.ID == focusID {
				return true
			}
			if b.ID == focusID {
				return false
			}
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}
