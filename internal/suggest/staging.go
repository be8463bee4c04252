// Package suggest accumulates AI-proposed task enhancements the user has
// accepted but not yet committed, and merges them into a task at save time.
package suggest

import (
	"strings"

	"github.com/taskwise-ai/taskwise/internal/date"
	"github.com/taskwise-ai/taskwise/internal/task"
)

// Staging is a partial record of accepted suggestions for one edit session.
// Zero-value fields are "not staged".
type Staging struct {
	ImprovedDescription   string   `json:"improvedDescription,omitempty"`
	GeneratedSubtasks     []string `json:"generatedSubtasks,omitempty"`
	SuggestedEmoji        string   `json:"suggestedEmoji,omitempty"`
	SuggestedTagline      string   `json:"suggestedTagline,omitempty"`
	SuggestedImageQuery   string   `json:"suggestedImageQuery,omitempty"`
	SuggestedTaskVibe     string   `json:"suggestedTaskVibe,omitempty"`
	SuggestedReminderDate string   `json:"suggestedReminderDate,omitempty"`
}

// Empty reports whether nothing is staged.
func (s Staging) Empty() bool {
	return s.ImprovedDescription == "" &&
		len(s.GeneratedSubtasks) == 0 &&
		s.SuggestedEmoji == "" &&
		s.SuggestedTagline == "" &&
		s.SuggestedImageQuery == "" &&
		s.SuggestedTaskVibe == "" &&
		s.SuggestedReminderDate == ""
}

// Merge shallow-merges incoming staged fields over s. Non-zero incoming
// fields win; the subtask list is replaced wholesale, not concatenated,
// reflecting the latest user selection.
func (s *Staging) Merge(in Staging) {
	if in.ImprovedDescription != "" {
		s.ImprovedDescription = in.ImprovedDescription
	}
	if len(in.GeneratedSubtasks) > 0 {
		s.GeneratedSubtasks = append([]string(nil), in.GeneratedSubtasks...)
	}
	if in.SuggestedEmoji != "" {
		s.SuggestedEmoji = in.SuggestedEmoji
	}
	if in.SuggestedTagline != "" {
		s.SuggestedTagline = in.SuggestedTagline
	}
	if in.SuggestedImageQuery != "" {
		s.SuggestedImageQuery = in.SuggestedImageQuery
	}
	if in.SuggestedTaskVibe != "" {
		s.SuggestedTaskVibe = in.SuggestedTaskVibe
	}
	if in.SuggestedReminderDate != "" {
		s.SuggestedReminderDate = in.SuggestedReminderDate
	}
}

// Apply merges the staged suggestions into t in fixed precedence order.
// newSubtaskID mints ids for appended subtasks; warnf reports discarded
// fields (an unparseable reminder date is dropped, never fatal).
func (s Staging) Apply(t *task.Task, newSubtaskID func() string, warnf func(format string, args ...any)) {
	if warnf == nil {
		warnf = func(string, ...any) {}
	}

	if s.ImprovedDescription != "" {
		t.Description = s.ImprovedDescription
	}

	for _, text := range s.GeneratedSubtasks {
		t.Subtasks = append(t.Subtasks, task.Subtask{
			ID:   newSubtaskID(),
			Text: text,
		})
	}

	if s.SuggestedEmoji != "" {
		t.Title = task.WithEmoji(t.Title, s.SuggestedEmoji)
	}

	// Append the tagline to the possibly just-replaced description, once.
	if s.SuggestedTagline != "" && !strings.Contains(t.Description, s.SuggestedTagline) {
		t.Description = t.Description + "\n\n\"" + s.SuggestedTagline + "\""
	}

	if s.SuggestedTaskVibe != "" {
		t.TaskVibe = s.SuggestedTaskVibe
	}

	if s.SuggestedReminderDate != "" && t.ReminderDate == nil {
		d, err := date.Parse(s.SuggestedReminderDate)
		if err != nil {
			warnf("discarding suggested reminder date %q: %v", s.SuggestedReminderDate, err)
		} else {
			t.ReminderDate = &d
		}
	}

	if s.SuggestedImageQuery != "" && t.ImageURL == "" {
		t.DataAIHint = imageHint(s.SuggestedImageQuery)
	}
}

// imageHint trims an image query to its first two words, the short hint the
// card UI later feeds to on-demand image generation.
func imageHint(query string) string {
	words := strings.Fields(strings.TrimSpace(query))
	if len(words) > 2 {
		words = words[:2]
	}
	return strings.Join(words, " ")
}
