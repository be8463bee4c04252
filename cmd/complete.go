package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskwise-ai/taskwise/internal/output"
	"github.com/taskwise-ai/taskwise/internal/task"
)

var completeCmd = &cobra.Command{
	Use:     "complete ID",
	Aliases: []string{"done", "toggle"},
	Short:   "Toggle a task's completion",
	Long: `Marks an incomplete task as completed (recording the completion
time) or re-opens a completed one. Subtasks keep their own state.`,
	Args: cobra.ExactArgs(1),
	RunE: runComplete,
}

func init() {
	rootCmd.AddCommand(completeCmd)
}

func runComplete(_ *cobra.Command, args []string) error {
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

	id := args[0]
	if a.store.Get(id) == nil {
		return task.NotFound(id)
	}
	if err := a.store.ToggleCompletion(id); err != nil {
		return err
	}

	t := a.store.Get(id)
	action := "reopen"
	if t.Completed {
		action = "complete"
	}
	a.st.LogMutation(action, id, t.Title)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}
	if t.Completed {
		output.Messagef(os.Stdout, "Completed task %s: %s", t.ID, t.Title)
	} else {
		output.Messagef(os.Stdout, "Reopened task %s: %s", t.ID, t.Title)
	}
	return nil
}
