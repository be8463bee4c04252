package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskwise-ai/taskwise/internal/clierr"
	"github.com/taskwise-ai/taskwise/internal/focus"
	"github.com/taskwise-ai/taskwise/internal/output"
)

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Show today's focus task",
	Long: `Shows the task of the day. The pick sticks for the whole day and
only changes when the chosen task is completed or deleted, a new day
begins, or you ask for a --reroll. High-priority tasks are preferred,
then medium, then any incomplete task.`,
	Args: cobra.NoArgs,
	RunE: runFocus,
}

func init() {
	focusCmd.Flags().Bool("reroll", false, "discard today's pick and choose again")
	rootCmd.AddCommand(focusCmd)
}

func runFocus(cmd *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	unlock, err := a.lock()
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	defer unlock() //nolint:errcheck // best-effort unlock on exit
	a.store.Load()

	sel := focus.New(a.st)
	var id string
	if reroll, _ := cmd.Flags().GetBool("reroll"); reroll {
		id = sel.Reroll(a.store.Tasks())
	} else {
		id = sel.Pick(a.store.Tasks())
	}

	if id == "" {
		return clierr.New(clierr.NoFocusTask,
			"no incomplete tasks to focus on")
	}

	t := a.store.Get(id)
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, t)
	case output.FormatCompact:
		output.TaskDetailCompact(os.Stdout, t, id)
	default:
		output.TaskDetail(os.Stdout, t, id)
	}
	return nil
}
