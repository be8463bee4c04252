// Package config handles taskwise configuration.
package config

const (
	// DefaultDir is the default taskwise directory name.
	DefaultDir = "taskwise"
	// DefaultStateDir is the default state subdirectory name.
	DefaultStateDir = "state"
	// DefaultTheme is the default UI theme.
	DefaultTheme = ThemeAuto
	// DefaultPriority is the default priority for new tasks.
	DefaultPriority = "medium"

	// ConfigFileName is the name of the config file within the taskwise directory.
	ConfigFileName = "config.yml"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 2
)

// Theme values. Auto resolves the terminal background at startup.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
	ThemeAuto  = "auto"
)

// Themes lists the accepted theme values.
var Themes = []string{ThemeLight, ThemeDark, ThemeAuto}
