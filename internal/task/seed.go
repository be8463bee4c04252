package task

import (
	"time"

	"github.com/taskwise-ai/taskwise/internal/date"
)

// Seed returns the sample task set loaded when no usable state exists.
// Timestamps are relative to now so the samples always look current.
func Seed(now time.Time) []*Task {
	twoDaysAgo := now.Add(-48 * time.Hour)
	fiveDaysAgo := now.Add(-5 * 24 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)

	groceriesDue := date.FromTime(now.Add(3 * 24 * time.Hour))
	groceriesReminder := date.FromTime(now.Add(2 * 24 * time.Hour))
	proposalDue := date.FromTime(now.Add(10 * 24 * time.Hour))
	doctorDue := date.FromTime(now.Add(20 * 24 * time.Hour))

	return []*Task{
		{
			ID:    "sample-1",
			Title: "🛒 Grocery Shopping",
			Description: "Buy groceries for the week. Focus on fresh vegetables and fruits. " +
				"Need to get items for the weekend party as well.\n\n\"Fueling up for a fantastic week!\"",
			Subtasks: []Subtask{
				{ID: "s1-1", Text: "Buy apples and bananas", Completed: true},
				{ID: "s1-2", Text: "Buy milk (2 gallons)", Completed: false},
				{ID: "s1-3", Text: "Buy whole wheat bread", Completed: false},
			},
			Priority:     PriorityHigh,
			DueDate:      &groceriesDue,
			ReminderDate: &groceriesReminder,
			Tags:         []string{"personal", "home", "urgent"},
			DelegatedTo:  "Self",
			ImageURL:     "https://placehold.co/600x400.png",
			DataAIHint:   "groceries food",
			CreatedAt:    twoDaysAgo,
			UpdatedAt:    yesterday,
		},
		{
			ID:    "sample-2",
			Title: "🚀 Project Proposal Finalization",
			Description: "Draft and finalize the project proposal for Q4. Must include detailed market analysis, " +
				"competitor research, and realistic financial projections. Circulate to stakeholders by EOD." +
				"\n\n\"Launching the next big thing!\"",
			Subtasks: []Subtask{
				{ID: "s2-1", Text: "Market research & competitor analysis", Completed: true},
				{ID: "s2-2", Text: "Draft initial proposal sections", Completed: true},
				{ID: "s2-3", Text: "Incorporate financial projections", Completed: false},
				{ID: "s2-4", Text: "Final review with team lead", Completed: false},
			},
			Priority:    PriorityMedium,
			DueDate:     &proposalDue,
			Tags:        []string{"work", "project", "strategic"},
			DelegatedTo: "John Doe",
			ImageURL:    "https://placehold.co/600x400.png",
			DataAIHint:  "business proposal",
			CreatedAt:   fiveDaysAgo,
			UpdatedAt:   now,
		},
		{
			ID:    "sample-3",
			Title: "Book Doctor Appointment",
			Description: "Schedule annual check-up with Dr. Smith. Prefer a weekday morning slot. " +
				"Check insurance coverage beforehand.",
			Subtasks: []Subtask{
				{ID: "s3-1", Text: "Call clinic for availability", Completed: false},
				{ID: "s3-2", Text: "Verify insurance details", Completed: false},
			},
			Priority:    PriorityLow,
			DueDate:     &doctorDue,
			Tags:        []string{"health", "personal"},
			DataAIHint:  "medical health",
			CreatedAt:   now,
			UpdatedAt:   now,
			Completed:   true,
			CompletedAt: &yesterday,
		},
	}
}
