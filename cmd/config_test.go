package cmd

import (
	"errors"
	"testing"

	"github.com/taskwise-ai/taskwise/internal/clierr"
	"github.com/taskwise-ai/taskwise/internal/config"
)

func initTestDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if _, err := config.Init(dir); err != nil {
		t.Fatal(err)
	}
	prev := flagDir
	flagDir = dir
	t.Cleanup(func() { flagDir = prev })
	return dir
}

func TestConfigSetRejectsOutOfRangeTitleLines(t *testing.T) {
	dir := initTestDir(t)

	for _, value := range []string{"-1", "4", "5", "ten"} {
		err := runConfigSet(configSetCmd, []string{"tui.title_lines", value})
		if err == nil {
			t.Fatalf("title_lines %q: want error, got nil", value)
		}
		var cliErr *clierr.Error
		if !errors.As(err, &cliErr) || cliErr.Code != clierr.InvalidInput {
			t.Errorf("title_lines %q: error = %v, want INVALID_INPUT", value, err)
		}
	}

	// The rejected value must not have been written: the config still loads.
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("config no longer loads after rejected set: %v", err)
	}
	if cfg.TUI.TitleLines != 2 {
		t.Errorf("TitleLines = %d, want untouched default 2", cfg.TUI.TitleLines)
	}
}

func TestConfigSetTitleLinesRoundTrip(t *testing.T) {
	dir := initTestDir(t)

	for _, value := range []string{"0", "3"} {
		if err := runConfigSet(configSetCmd, []string{"tui.title_lines", value}); err != nil {
			t.Fatalf("title_lines %q: %v", value, err)
		}
		if _, err := config.Load(dir); err != nil {
			t.Fatalf("title_lines %q: saved config fails to load: %v", value, err)
		}
	}
}

func TestConfigSetUnknownKey(t *testing.T) {
	initTestDir(t)

	err := runConfigSet(configSetCmd, []string{"no.such.key", "x"})
	var cliErr *clierr.Error
	if !errors.As(err, &cliErr) || cliErr.Code != clierr.InvalidInput {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}
