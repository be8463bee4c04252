package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/taskwise-ai/taskwise/internal/output"
	"github.com/taskwise-ai/taskwise/internal/suggest"
	"github.com/taskwise-ai/taskwise/internal/task"
)

var editCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Edit an existing task",
	Long: `Updates fields of an existing task. Only flags you set are changed.
Suggestions staged for this task with 'taskwise assist ID --apply' are
merged in and cleared, unless --no-suggestions is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().String("title", "", "new task title")
	editCmd.Flags().String("body", "", "new description (markdown)")
	editCmd.Flags().String("priority", "", "new priority (low, medium, high)")
	editCmd.Flags().String("due", "", "due date (YYYY-MM-DD)")
	editCmd.Flags().Bool("clear-due", false, "remove the due date")
	editCmd.Flags().String("reminder", "", "reminder date (YYYY-MM-DD)")
	editCmd.Flags().Bool("clear-reminder", false, "remove the reminder date")
	editCmd.Flags().StringSlice("tags", nil, "comma-separated tags (replaces existing)")
	editCmd.Flags().String("delegate", "", "name of the person the task is delegated to")
	editCmd.Flags().Bool("no-suggestions", false, "ignore staged suggestions")
	editCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "tag":
			name = "tags"
		case "description":
			name = "body"
		}
		return pflag.NormalizedName(name)
	})
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
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
	existing := a.store.Get(id)
	if existing == nil {
		return task.NotFound(id)
	}

	// Validate against a copy first so a bad flag leaves the task untouched.
	draft := existing.Clone()
	if cmd.Flags().Changed("title") {
		title, _ := cmd.Flags().GetString("title")
		draft.Title = title
	}
	if err := applyTaskFlags(cmd, draft); err != nil {
		return err
	}
	if clear, _ := cmd.Flags().GetBool("clear-due"); clear {
		draft.DueDate = nil
	}
	if clear, _ := cmd.Flags().GetBool("clear-reminder"); clear {
		draft.ReminderDate = nil
	}

	skipStaged, _ := cmd.Flags().GetBool("no-suggestions")
	staged, err := suggest.LoadSession(a.st, id)
	if err != nil {
		return err
	}
	if !skipStaged && !staged.Empty() {
		staged.Apply(draft, task.NewID, output.Noticef)
	}
	if !staged.Empty() {
		if err := suggest.ClearSession(a.st, id); err != nil {
			output.Noticef("clearing staged suggestions failed: %v", err)
		}
	}

	if err := task.ValidateTagCap(draft.Tags); err != nil {
		return err
	}
	if err := task.ValidateSubtaskCap(len(draft.Subtasks)); err != nil {
		return err
	}
	if err := draft.Validate(); err != nil {
		return err
	}

	if err := a.store.Update(id, func(t *task.Task) {
		*t = *draft
	}); err != nil {
		return err
	}
	a.st.LogMutation("edit", id, draft.Title)

	updated := a.store.Get(id)
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, updated)
	}
	output.Messagef(os.Stdout, "Updated task %s: %s", updated.ID, updated.Title)
	return nil
}
