package task

import (
	"strings"
	"unicode"
)

// Emoji handling for task titles. The first whitespace-delimited segment of a
// title is treated as an emoji token when all of its runes are pictographic.
// The AI assistant suggests a single emoji to prepend; replacing rather than
// stacking keeps the operation idempotent across repeated saves.

// LeadingEmoji returns the emoji token at the start of the title, or "".
func LeadingEmoji(title string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(title), " ")
	if first != "" && isEmojiToken(first) {
		return first
	}
	return ""
}

// StripLeadingEmoji removes the leading emoji token and following space, if any.
func StripLeadingEmoji(title string) string {
	emoji := LeadingEmoji(title)
	if emoji == "" {
		return title
	}
	return strings.TrimLeft(strings.TrimPrefix(strings.TrimSpace(title), emoji), " ")
}

// WithEmoji returns the title with the given emoji as its only leading token.
// Any existing leading emoji is replaced.
func WithEmoji(title, emoji string) string {
	if emoji == "" {
		return title
	}
	return emoji + " " + StripLeadingEmoji(title)
}

// isEmojiToken reports whether the string consists solely of emoji runes,
// joined with zero-width joiners or variation selectors.
func isEmojiToken(s string) bool {
	any := false
	for _, r := range s {
		switch {
		case r == 0x200D || r == 0xFE0F || r == 0xFE0E: // ZWJ, variation selectors
			continue
		case isEmojiRune(r):
			any = true
		default:
			return false
		}
	}
	return any
}

func isEmojiRune(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1F5FF: // misc symbols and pictographs
		return true
	case r >= 0x1F600 && r <= 0x1F64F: // emoticons
		return true
	case r >= 0x1F680 && r <= 0x1F6FF: // transport and map
		return true
	case r >= 0x1F900 && r <= 0x1F9FF: // supplemental symbols
		return true
	case r >= 0x1FA70 && r <= 0x1FAFF: // extended-A
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		return true
	case r >= 0x1F1E6 && r <= 0x1F1FF: // regional indicators
		return true
	case r == 0x2B50 || r == 0x2B55:
		return true
	default:
		return unicode.Is(unicode.So, r) && r > 0x2000
	}
}
