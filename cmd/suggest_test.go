package cmd

import (
	"errors"
	"testing"

	"github.com/taskwise-ai/taskwise/internal/ai"
	"github.com/taskwise-ai/taskwise/internal/clierr"
	"github.com/taskwise-ai/taskwise/internal/task"
)

func TestDraftFromSuggestionRejectsEmptyTitle(t *testing.T) {
	for _, result := range []*ai.RandomTaskResult{
		{},
		{SuggestedTitle: "   "},
		{SuggestedDescription: "body but no title"},
	} {
		_, err := draftFromSuggestion(result, "medium")
		if err == nil {
			t.Fatalf("result %+v: want error, got nil", result)
		}
		var cliErr *clierr.Error
		if !errors.As(err, &cliErr) || cliErr.Code != clierr.AIUnavailable {
			t.Errorf("result %+v: error = %v, want AI_UNAVAILABLE", result, err)
		}
	}
}

func TestDraftFromSuggestionBuildsValidTask(t *testing.T) {
	result := &ai.RandomTaskResult{
		SuggestedTitle:       "  Learn origami  ",
		SuggestedDescription: "Fold a crane.",
		SuggestedPriority:    "high",
		SuggestedTags:        []string{"Fun", " craft "},
		SuggestedSubtasks:    []string{"Buy paper", "Watch tutorial"},
	}

	draft, err := draftFromSuggestion(result, "medium")
	if err != nil {
		t.Fatal(err)
	}
	if draft.Title != "Learn origami" {
		t.Errorf("Title = %q", draft.Title)
	}
	if draft.Priority != task.PriorityHigh {
		t.Errorf("Priority = %q, want high", draft.Priority)
	}
	if len(draft.Subtasks) != 2 || draft.Subtasks[0].ID == draft.Subtasks[1].ID {
		t.Errorf("Subtasks = %+v, want 2 with distinct ids", draft.Subtasks)
	}
	draft.ID = "x" // Validate requires an id; the store assigns it on Create.
	if err := draft.Validate(); err != nil {
		t.Errorf("draft does not validate: %v", err)
	}
}

func TestDraftFromSuggestionFallsBackOnBadPriority(t *testing.T) {
	result := &ai.RandomTaskResult{
		SuggestedTitle:    "Water the plants",
		SuggestedPriority: "urgent",
	}

	draft, err := draftFromSuggestion(result, "low")
	if err != nil {
		t.Fatal(err)
	}
	if draft.Priority != task.PriorityLow {
		t.Errorf("Priority = %q, want configured default low", draft.Priority)
	}
}

func TestDraftFromSuggestionTruncatesToCaps(t *testing.T) {
	result := &ai.RandomTaskResult{
		SuggestedTitle: "Overachiever",
		SuggestedTags:  []string{"a", "b", "c", "d", "e", "f", "g"},
		SuggestedSubtasks: []string{
			"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12",
		},
	}

	draft, err := draftFromSuggestion(result, "medium")
	if err != nil {
		t.Fatal(err)
	}
	if len(draft.Tags) != task.MaxTags {
		t.Errorf("len(Tags) = %d, want %d", len(draft.Tags), task.MaxTags)
	}
	if len(draft.Subtasks) != task.MaxSubtasks {
		t.Errorf("len(Subtasks) = %d, want %d", len(draft.Subtasks), task.MaxSubtasks)
	}
}
