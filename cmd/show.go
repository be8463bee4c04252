package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/taskwise-ai/taskwise/internal/output"
	"github.com/taskwise-ai/taskwise/internal/task"
)

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show task details",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}

	t := a.store.Get(args[0])
	if t == nil {
		return task.NotFound(args[0])
	}

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, t)
	case output.FormatCompact:
		output.TaskDetailCompact(os.Stdout, t, a.focusID())
	default:
		output.TaskDetail(os.Stdout, t, a.focusID())
	}
	return nil
}
