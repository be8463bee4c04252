package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/taskwise-ai/taskwise/internal/board"
	"github.com/taskwise-ai/taskwise/internal/output"
	"github.com/taskwise-ai/taskwise/internal/task"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `Lists tasks, incomplete first and the focus task on top. Filters
combine with AND semantics; --tags requires every listed tag.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().String("search", "", "substring match on title or description")
	listCmd.Flags().String("priority", "", "filter by priority (low, medium, high)")
	listCmd.Flags().String("due", "", "filter by due date (YYYY-MM-DD)")
	listCmd.Flags().String("tags", "", "comma-separated tags, all required")
	listCmd.Flags().Bool("completed", false, "show only completed tasks")
	listCmd.Flags().Bool("incomplete", false, "show only incomplete tasks")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}

	crit := board.Criteria{}
	crit.Search, _ = cmd.Flags().GetString("search")
	crit.Priority, _ = cmd.Flags().GetString("priority")
	crit.DueDate, _ = cmd.Flags().GetString("due")
	crit.Tags, _ = cmd.Flags().GetString("tags")

	if crit.Priority != "" && crit.Priority != board.PriorityAll {
		if err := task.ValidatePriority(crit.Priority); err != nil {
			return err
		}
	}

	focusID := a.focusID()
	tasks := board.Apply(a.store.Tasks(), crit, focusID)

	completedOnly, _ := cmd.Flags().GetBool("completed")
	incompleteOnly, _ := cmd.Flags().GetBool("incomplete")
	if completedOnly || incompleteOnly {
		filtered := tasks[:0:0]
		for _, t := range tasks {
			if t.Completed == completedOnly {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, map[string]any{
			"tasks":        tasks,
			"taskOfTheDay": focusID,
		})
	case output.FormatCompact:
		output.TaskCompact(os.Stdout, tasks, focusID)
	default:
		output.TaskTable(os.Stdout, tasks, focusID)
	}
	return nil
}
