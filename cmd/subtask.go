package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskwise-ai/taskwise/internal/clierr"
	"github.com/taskwise-ai/taskwise/internal/output"
	"github.com/taskwise-ai/taskwise/internal/task"
)

var subtaskCmd = &cobra.Command{
	Use:     "subtask",
	Aliases: []string{"sub"},
	Short:   "Manage subtasks of a task",
}

var subtaskAddCmd = &cobra.Command{
	Use:   "add TASK_ID TEXT",
	Short: "Add a subtask",
	Args:  cobra.ExactArgs(2),
	RunE:  runSubtaskAdd,
}

var subtaskToggleCmd = &cobra.Command{
	Use:   "toggle TASK_ID SUBTASK_ID",
	Short: "Toggle a subtask's completion",
	Args:  cobra.ExactArgs(2),
	RunE:  runSubtaskToggle,
}

var subtaskRemoveCmd = &cobra.Command{
	Use:     "remove TASK_ID SUBTASK_ID",
	Aliases: []string{"rm"},
	Short:   "Remove a subtask",
	Args:    cobra.ExactArgs(2),
	RunE:    runSubtaskRemove,
}

func init() {
	subtaskCmd.AddCommand(subtaskAddCmd, subtaskToggleCmd, subtaskRemoveCmd)
	rootCmd.AddCommand(subtaskCmd)
}

func runSubtaskAdd(_ *cobra.Command, args []string) error {
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
	text := strings.TrimSpace(args[1])
	if text == "" {
		return clierr.New(clierr.InvalidInput, "subtask text is required")
	}

	t := a.store.Get(id)
	if t == nil {
		return task.NotFound(id)
	}
	if err := task.ValidateSubtaskCap(len(t.Subtasks) + 1); err != nil {
		return err
	}

	sub := task.Subtask{ID: task.NewID(), Text: text}
	if err := a.store.Update(id, func(t *task.Task) {
		t.Subtasks = append(t.Subtasks, sub)
	}); err != nil {
		return err
	}
	a.st.LogMutation("subtask-add", id, text)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, a.store.Get(id))
	}
	output.Messagef(os.Stdout, "Added subtask %s to task %s", sub.ID, id)
	return nil
}

func runSubtaskToggle(_ *cobra.Command, args []string) error {
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

	taskID, subID := args[0], args[1]
	t := a.store.Get(taskID)
	if t == nil {
		return task.NotFound(taskID)
	}
	if t.Subtask(subID) == nil {
		return task.SubtaskNotFound(taskID, subID)
	}

	if err := a.store.ToggleSubtask(taskID, subID); err != nil {
		return err
	}
	a.st.LogMutation("subtask-toggle", taskID, subID)

	t = a.store.Get(taskID)
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}
	sub := t.Subtask(subID)
	state := "open"
	if sub.Completed {
		state = "done"
	}
	output.Messagef(os.Stdout, "Subtask %s is now %s: %s", sub.ID, state, sub.Text)
	return nil
}

func runSubtaskRemove(_ *cobra.Command, args []string) error {
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

	taskID, subID := args[0], args[1]
	t := a.store.Get(taskID)
	if t == nil {
		return task.NotFound(taskID)
	}
	if t.Subtask(subID) == nil {
		return task.SubtaskNotFound(taskID, subID)
	}

	if err := a.store.Update(taskID, func(t *task.Task) {
		for i := range t.Subtasks {
			if t.Subtasks[i].ID == subID {
				t.Subtasks = append(t.Subtasks[:i], t.Subtasks[i+1:]...)
				return
			}
		}
	}); err != nil {
		return err
	}
	a.st.LogMutation("subtask-remove", taskID, subID)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, a.store.Get(taskID))
	}
	output.Messagef(os.Stdout, "Removed subtask %s from task %s", subID, taskID)
	return nil
}
