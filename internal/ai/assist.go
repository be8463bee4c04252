package ai

import (
	"context"
)

// AssistInput carries the current form state to the task assistant.
// Description falls back to the title when the user wrote none.
type AssistInput struct {
	Description string   `json:"description"`
	Subtasks    []string `json:"subtasks"`
	Priority    string   `json:"priority"`
	DueDate     string   `json:"dueDate"`
	Reminder    string   `json:"reminder"`
	Tags        []string `json:"tags"`
	ImageURL    string   `json:"imageUrl,omitempty"`
}

// AssistResult is the assistant's full suggestion payload. Optional fields
// are empty when the model had nothing useful to offer; the image query is
// only produced when the input carried no image.
type AssistResult struct {
	ApproachSuggestions   []string `json:"approachSuggestions"`
	ImprovedDescription   string   `json:"improvedDescription"`
	GeneratedSubtasks     []string `json:"generatedSubtasks"`
	SuggestedEmoji        string   `json:"suggestedEmoji,omitempty"`
	SuggestedTagline      string   `json:"suggestedTagline,omitempty"`
	SuggestedImageQuery   string   `json:"suggestedImageQuery,omitempty"`
	SuggestedTaskVibe     string   `json:"suggestedTaskVibe,omitempty"`
	SuggestedReminderDate string   `json:"suggestedReminderDate,omitempty"`
}

// TaskAssistance requests suggestions for the task described by in.
func (c *Client) TaskAssistance(ctx context.Context, in AssistInput) (*AssistResult, error) {
	var out AssistResult
	if err := c.post(ctx, "/v1/task-assistance", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RandomTaskResult is a complete draft task proposed by the backend.
type RandomTaskResult struct {
	SuggestedTitle       string   `json:"suggestedTitle"`
	SuggestedDescription string   `json:"suggestedDescription,omitempty"`
	SuggestedPriority    string   `json:"suggestedPriority,omitempty"`
	SuggestedTags        []string `json:"suggestedTags,omitempty"`
	SuggestedSubtasks    []string `json:"suggestedSubtasks,omitempty"`
}

// RandomTask asks the backend for a spontaneous task idea.
func (c *Client) RandomTask(ctx context.Context) (*RandomTaskResult, error) {
	var out RandomTaskResult
	if err := c.post(ctx, "/v1/random-task", struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MotivationResult carries the daily motivational quote or tip.
type MotivationResult struct {
	TipOrQuote string `json:"tipOrQuote"`
}

// DailyMotivation fetches a short motivational quote or productivity tip.
func (c *Client) DailyMotivation(ctx context.Context) (*MotivationResult, error) {
	var out MotivationResult
	if err := c.post(ctx, "/v1/daily-motivation", struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
