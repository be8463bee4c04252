package cmd

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/taskwise-ai/taskwise/internal/clierr"
	"github.com/taskwise-ai/taskwise/internal/config"
	"github.com/taskwise-ai/taskwise/internal/output"
	"github.com/taskwise-ai/taskwise/internal/task"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Get and set configuration values",
}

var configGetCmd = &cobra.Command{
	Use:   "get [KEY]",
	Short: "Print a config value, or the whole config",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a config value",
	Long: `Sets a config value and writes the config file.

Keys:
  theme                  light, dark or auto
  defaults.priority      low, medium or high
  ai.base_url            AI backend base URL (empty disables AI commands)
  tui.title_lines        task title lines on the TUI board
  tui.show_descriptions  show descriptions on TUI cards (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return output.JSON(os.Stdout, configView(cfg))
	}

	val, ok := configView(cfg)[args[0]]
	if !ok {
		return clierr.Newf(clierr.InvalidInput, "unknown config key %q", args[0])
	}
	output.Messagef(os.Stdout, "%v", val)
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	switch key {
	case "theme":
		if err := config.ValidateTheme(value); err != nil {
			return err
		}
		cfg.Theme = value
	case "defaults.priority":
		if err := task.ValidatePriority(value); err != nil {
			return err
		}
		cfg.Defaults.Priority = value
	case "ai.base_url":
		cfg.AI.BaseURL = value
	case "tui.title_lines":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 || n > 3 {
			return clierr.Newf(clierr.InvalidInput, "tui.title_lines must be between 0 and 3")
		}
		cfg.TUI.TitleLines = n
	case "tui.show_descriptions":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return clierr.Newf(clierr.InvalidInput, "tui.show_descriptions must be true or false")
		}
		cfg.TUI.ShowDescriptions = b
	default:
		return clierr.Newf(clierr.InvalidInput, "unknown config key %q", key)
	}

	// Never persist a config a later Load would reject.
	if err := cfg.Validate(); err != nil {
		return clierr.Newf(clierr.InvalidInput, "%v", err)
	}
	if err := cfg.Save(); err != nil {
		return err
	}
	output.Messagef(os.Stdout, "Set %s = %s", key, value)
	return nil
}

func configView(cfg *config.Config) map[string]any {
	return map[string]any{
		"dir":                   cfg.Dir(),
		"theme":                 cfg.Theme,
		"defaults.priority":     cfg.Defaults.Priority,
		"ai.base_url":           cfg.AI.BaseURL,
		"tui.title_lines":       cfg.TUI.TitleLines,
		"tui.show_descriptions": cfg.TUI.ShowDescriptions,
	}
}
