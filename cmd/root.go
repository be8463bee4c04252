// Package cmd implements the taskwise CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/taskwise-ai/taskwise/internal/ai"
	"github.com/taskwise-ai/taskwise/internal/clierr"
	"github.com/taskwise-ai/taskwise/internal/config"
	"github.com/taskwise-ai/taskwise/internal/filelock"
	"github.com/taskwise-ai/taskwise/internal/focus"
	"github.com/taskwise-ai/taskwise/internal/output"
	"github.com/taskwise-ai/taskwise/internal/storage"
	"github.com/taskwise-ai/taskwise/internal/store"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON    bool
	flagTable   bool
	flagCompact bool
	flagDir     string
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "taskwise",
	Short: "AI-assisted personal task manager",
	Long: `taskwise manages your personal tasks from the terminal: subtasks,
priorities, due dates, tags, a daily focus task, and optional AI suggestions
for descriptions, subtasks, emoji, and images. Run taskwise to open the board.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runTUI,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
			output.DisableMarkdown()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "path to taskwise directory")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	// SilentError exits with its code and no output.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	jsonMode := flagJSON
	if !jsonMode {
		jsonMode = os.Getenv("TASKWISE_OUTPUT") == "json"
	}

	if jsonMode {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	fmt.Fprintln(os.Stderr, err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// defaultHomeDir returns the path to ~/.config/taskwise.
func defaultHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config/taskwise"), nil
}

// resolveDir returns the absolute path to the taskwise directory.
// Falls back to ~/.config/taskwise if no directory is found in the current tree.
func resolveDir() (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	dir, err := config.FindDir(cwd)
	if err == nil {
		return dir, nil
	}

	return defaultHomeDir()
}

// loadConfig finds and loads the taskwise config.
// If the resolved directory is ~/.config/taskwise and it doesn't exist yet,
// it is auto-created so the first run just works.
func loadConfig() (*config.Config, error) {
	dir, err := resolveDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(dir)
	if err == nil {
		return cfg, nil
	}

	if !errors.Is(err, config.ErrNotFound) {
		return nil, err
	}
	homeDir, homeErr := defaultHomeDir()
	if homeErr != nil || dir != homeDir {
		return nil, err
	}

	return config.Init(homeDir)
}

// app bundles the config, state storage and loaded task store that nearly
// every command needs.
type app struct {
	cfg   *config.Config
	st    *storage.Storage
	store *store.Store
}

// openApp loads config, opens storage, and loads the task collection.
// A malformed snapshot silently falls back to the seed set.
func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	output.SetTheme(config.ResolveTheme(cfg.Theme))
	st, err := storage.Open(cfg.StatePath())
	if err != nil {
		return nil, err
	}
	s := store.Open(st)
	s.Load()
	return &app{cfg: cfg, st: st, store: s}, nil
}

// focusID recomputes and returns the current focus task id.
func (a *app) focusID() string {
	return focus.New(a.st).Pick(a.store.Tasks())
}

// aiClient returns a client for the configured AI backend.
func (a *app) aiClient() *ai.Client {
	return ai.New(a.cfg.AI.BaseURL, a.cfg.APIKey())
}

// lock serializes state mutations across concurrent taskwise invocations.
func (a *app) lock() (unlock func() error, err error) {
	return filelock.Lock(filepath.Join(a.cfg.Dir(), ".lock"))
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// warnSave reports a failed state write without failing the command: the
// in-memory mutation succeeded and the next write retries the snapshot.
func warnSave(err error) {
	if err != nil {
		output.Noticef("saving state failed: %v", err)
	}
}
