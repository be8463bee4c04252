package config

import (
	"github.com/muesli/termenv"
)

// ResolveTheme maps the configured theme to a concrete light/dark value.
// "auto" asks the terminal for its background color; a dark background (or
// no answer) resolves to dark, matching the web app's default.
func ResolveTheme(theme string) string {
	if theme != ThemeAuto {
		return theme
	}
	if termenv.HasDarkBackground() {
		return ThemeDark
	}
	return ThemeLight
}
