package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/taskwise-ai/taskwise/internal/config"
	"github.com/taskwise-ai/taskwise/internal/output"
	"github.com/taskwise-ai/taskwise/internal/storage"
	"github.com/taskwise-ai/taskwise/internal/store"
	"github.com/taskwise-ai/taskwise/internal/task"
)

var initCmd = &cobra.Command{
	Use:   "init [DIR]",
	Short: "Initialize a new taskwise directory",
	Long: `Creates a taskwise directory with a config file and a state
subdirectory seeded with a few starter tasks. With no argument the
directory is created as ./taskwise.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().Bool("empty", false, "skip the starter tasks")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	target := config.DefaultDir
	if len(args) > 0 {
		target = args[0]
	}
	if flagDir != "" {
		target = flagDir
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return err
	}

	cfg, err := config.Init(abs)
	if err != nil {
		return err
	}

	st, err := storage.Open(cfg.StatePath())
	if err != nil {
		return err
	}

	empty, _ := cmd.Flags().GetBool("empty")
	seeded := false
	count := 0
	if empty {
		// Persist an empty collection so the next load doesn't seed.
		if err := st.Put(storage.KeyTasks, []*task.Task{}); err != nil {
			return err
		}
	} else {
		s := store.Open(st)
		seeded = s.Load()
		count = s.Len()
		if seeded {
			if err := s.Save(); err != nil {
				return err
			}
		}
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"dir":    cfg.Dir(),
			"seeded": seeded,
		})
	}

	output.Messagef(os.Stdout, "Initialized taskwise directory at %s", cfg.Dir())
	if seeded {
		output.Messagef(os.Stdout, "Seeded %d starter tasks. Run 'taskwise list' to see them.", count)
	}
	return nil
}
