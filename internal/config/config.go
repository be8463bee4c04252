package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/taskwise-ai/taskwise/internal/clierr"
)

const fileMode = 0o600

// Sentinel errors.
var (
	ErrNotFound = errors.New("no taskwise directory found (run 'taskwise init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

// Config represents the taskwise configuration.
type Config struct {
	Version  int            `yaml:"version"`
	StateDir string         `yaml:"state_dir"`
	Theme    string         `yaml:"theme"`
	Defaults DefaultsConfig `yaml:"defaults"`
	AI       AIConfig       `yaml:"ai,omitempty"`
	TUI      TUIConfig      `yaml:"tui,omitempty"`

	// dir is the absolute path to the taskwise directory (not serialized).
	dir string `yaml:"-"`
}

// DefaultsConfig holds default values for new tasks.
type DefaultsConfig struct {
	Priority string `yaml:"priority"`
}

// AIConfig points at the generative backend. The API key is read from the
// TASKWISE_AI_KEY environment variable, never from the config file.
type AIConfig struct {
	BaseURL string `yaml:"base_url,omitempty"`
}

// TUIConfig holds TUI-specific display settings.
type TUIConfig struct {
	TitleLines       int  `yaml:"title_lines,omitempty"`
	ShowDescriptions bool `yaml:"show_descriptions,omitempty"`
}

// Dir returns the absolute path to the taskwise directory.
func (c *Config) Dir() string { return c.dir }

// StatePath returns the absolute path to the state directory.
func (c *Config) StatePath() string {
	return filepath.Join(c.dir, c.StateDir)
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// APIKey returns the AI backend key from the environment.
func (c *Config) APIKey() string {
	return os.Getenv("TASKWISE_AI_KEY")
}

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	return &Config{
		Version:  CurrentVersion,
		StateDir: DefaultStateDir,
		Theme:    DefaultTheme,
		Defaults: DefaultsConfig{Priority: DefaultPriority},
		TUI:      TUIConfig{TitleLines: 2},
	}
}

// SetDir sets the taskwise directory path on the config.
func (c *Config) SetDir(dir string) { c.dir = dir }

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if c.StateDir == "" {
		return fmt.Errorf("%w: state_dir is required", ErrInvalid)
	}
	if !validTheme(c.Theme) {
		return fmt.Errorf("%w: theme must be one of light, dark, auto", ErrInvalid)
	}
	switch c.Defaults.Priority {
	case "low", "medium", "high":
	default:
		return fmt.Errorf("%w: default priority %q unknown", ErrInvalid, c.Defaults.Priority)
	}
	if c.TUI.TitleLines < 0 || c.TUI.TitleLines > 3 {
		return fmt.Errorf("%w: tui.title_lines must be between 0 and 3", ErrInvalid)
	}
	return nil
}

func validTheme(theme string) bool {
	for _, t := range Themes {
		if t == theme {
			return true
		}
	}
	return false
}

// ValidateTheme checks a theme string from user input.
func ValidateTheme(theme string) error {
	if validTheme(theme) {
		return nil
	}
	return clierr.Newf(clierr.InvalidTheme, "invalid theme %q", theme).
		WithDetails(map[string]any{"theme": theme, "allowed": Themes})
}

// Init creates a new taskwise directory with default settings.
func Init(dir string) (*Config, error) {
	const dirMode = 0o750

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg := NewDefault()
	cfg.SetDir(absDir)

	if err := os.MkdirAll(cfg.StatePath(), dirMode); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads and validates a config from the given taskwise directory.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.dir = absDir

	// Migrate old config versions forward before validating.
	oldVersion := cfg.Version
	if err := migrate(&cfg); err != nil {
		return nil, err
	}

	// Persist migrated config so future loads skip re-migration.
	if cfg.Version != oldVersion {
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("saving migrated config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FindDir walks upward from startDir looking for a taskwise directory
// containing config.yml. Returns the absolute path to the taskwise directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		// Also check if we're inside the taskwise directory itself.
		candidate = filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", clierr.New(clierr.StoreNotFound,
				"no taskwise directory found (run 'taskwise init' to create one)")
		}
		dir = parent
	}
}
