package task

import "testing"

func TestLeadingEmoji(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"🛒 Grocery Shopping", "🛒"},
		{"🚀 Project Proposal", "🚀"},
		{"Book Doctor Appointment", ""},
		{"", ""},
		{"🛒", "🛒"},
		{"x Grocery", ""},
	}
	for _, tt := range tests {
		if got := LeadingEmoji(tt.title); got != tt.want {
			t.Errorf("LeadingEmoji(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestStripLeadingEmoji(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"🛒 Grocery Shopping", "Grocery Shopping"},
		{"Book Doctor Appointment", "Book Doctor Appointment"},
		{"🛒", ""},
	}
	for _, tt := range tests {
		if got := StripLeadingEmoji(tt.title); got != tt.want {
			t.Errorf("StripLeadingEmoji(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestWithEmoji(t *testing.T) {
	tests := []struct {
		title string
		emoji string
		want  string
	}{
		{"Grocery Shopping", "🛒", "🛒 Grocery Shopping"},
		{"🚀 Grocery Shopping", "🛒", "🛒 Grocery Shopping"},
		{"Grocery Shopping", "", "Grocery Shopping"},
	}
	for _, tt := range tests {
		if got := WithEmoji(tt.title, tt.emoji); got != tt.want {
			t.Errorf("WithEmoji(%q, %q) = %q, want %q", tt.title, tt.emoji, got, tt.want)
		}
	}
}

func TestWithEmojiIdempotent(t *testing.T) {
	once := WithEmoji("Grocery Shopping", "🛒")
	twice := WithEmoji(once, "🛒")
	if once != twice {
		t.Errorf("WithEmoji not idempotent: %q vs %q", once, twice)
	}
}
