package output

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

var (
	markdownDisabled bool
	markdownStyle    string
)

// DisableMarkdown turns glamour rendering off (plain text passthrough),
// used alongside DisableColor for NO_COLOR environments.
func DisableMarkdown() { markdownDisabled = true }

// SetTheme pins markdown rendering to a light or dark glamour style.
// Without it the style is negotiated with the terminal per render.
func SetTheme(theme string) { markdownStyle = theme }

// Markdown renders a markdown string for terminal display. On any rendering
// failure the raw text is returned; descriptions are user data and must
// never fail to display.
func Markdown(text string) string {
	if markdownDisabled {
		return text
	}
	styleOpt := glamour.WithAutoStyle()
	if markdownStyle != "" {
		styleOpt = glamour.WithStandardStyle(markdownStyle)
	}
	r, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(80), //nolint:mnd // sensible default reading width
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// Quote renders a motivational quote as a markdown blockquote.
func Quote(text string) string {
	return Markdown("> " + text)
}
