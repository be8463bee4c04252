package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "taskwise")
	cfg, err := Init(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", cfg.Version, CurrentVersion)
	}
	if _, err := os.Stat(cfg.StatePath()); err != nil {
		t.Errorf("state directory missing: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Theme != ThemeAuto {
		t.Errorf("Theme = %q, want %q", loaded.Theme, ThemeAuto)
	}
	if loaded.Defaults.Priority != DefaultPriority {
		t.Errorf("Defaults.Priority = %q, want %q", loaded.Defaults.Priority, DefaultPriority)
	}
	if loaded.StatePath() != filepath.Join(loaded.Dir(), DefaultStateDir) {
		t.Errorf("StatePath = %q", loaded.StatePath())
	}
}

func TestLoadMissingDir(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nowhere"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestLoadMigratesV1(t *testing.T) {
	dir := t.TempDir()
	v1 := "version: 1\nstate_dir: state\ndefaults:\n  priority: high\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(v1), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Version != CurrentVersion {
		t.Errorf("Version = %d, want migrated to %d", cfg.Version, CurrentVersion)
	}
	if cfg.Theme != DefaultTheme {
		t.Errorf("Theme = %q, want backfilled default", cfg.Theme)
	}
	if cfg.Defaults.Priority != "high" {
		t.Error("migration lost the configured default priority")
	}

	// The migrated config is persisted; the raw file now carries version 2.
	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "version: 2") {
		t.Errorf("migrated config not saved:\n%s", data)
	}
}

func TestLoadRejectsNewerVersion(t *testing.T) {
	dir := t.TempDir()
	future := "version: 99\nstate_dir: state\ntheme: auto\ndefaults:\n  priority: medium\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(future), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); !errors.Is(err, ErrInvalid) {
		t.Errorf("got %v, want ErrInvalid", err)
	}
}

func TestValidate(t *testing.T) {
	good := NewDefault()
	if err := good.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	badTheme := NewDefault()
	badTheme.Theme = "solarized"
	if err := badTheme.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("theme: got %v, want ErrInvalid", err)
	}

	badPrio := NewDefault()
	badPrio.Defaults.Priority = "urgent"
	if err := badPrio.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("priority: got %v, want ErrInvalid", err)
	}

	badLines := NewDefault()
	badLines.TUI.TitleLines = 9
	if err := badLines.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("title_lines: got %v, want ErrInvalid", err)
	}
}

func TestValidateTheme(t *testing.T) {
	for _, theme := range Themes {
		if err := ValidateTheme(theme); err != nil {
			t.Errorf("ValidateTheme(%q): %v", theme, err)
		}
	}
	if err := ValidateTheme("sepia"); err == nil {
		t.Error("unknown theme accepted")
	}
}

func TestFindDir(t *testing.T) {
	root := t.TempDir()
	twDir := filepath.Join(root, DefaultDir)
	if _, err := Init(twDir); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatal(err)
	}

	// From a nested working directory.
	got, err := FindDir(nested)
	if err != nil {
		t.Fatal(err)
	}
	if got != twDir {
		t.Errorf("FindDir = %q, want %q", got, twDir)
	}

	// From inside the taskwise directory itself.
	got, err = FindDir(twDir)
	if err != nil {
		t.Fatal(err)
	}
	if got != twDir {
		t.Errorf("FindDir from inside = %q, want %q", got, twDir)
	}
}

func TestAPIKeyFromEnv(t *testing.T) {
	t.Setenv("TASKWISE_AI_KEY", "sk-test")
	cfg := NewDefault()
	if cfg.APIKey() != "sk-test" {
		t.Errorf("APIKey = %q", cfg.APIKey())
	}
}
