package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskwise-ai/taskwise/internal/board"
	"github.com/taskwise-ai/taskwise/internal/output"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the kanban board",
	Long: `Shows tasks grouped into priority columns (high, medium, low) plus
a completed column. Incomplete tasks go to their priority column; the
completed column keeps the most recently finished on top.`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"summary"},
	Short:   "Show task statistics",
	Args:    cobra.NoArgs,
	RunE:    runStats,
}

func init() {
	boardCmd.Flags().String("search", "", "substring match on title or description")
	boardCmd.Flags().String("tags", "", "comma-separated tags, all required")
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(statsCmd)
}

func runBoard(cmd *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}

	crit := board.Criteria{Priority: board.PriorityAll}
	crit.Search, _ = cmd.Flags().GetString("search")
	crit.Tags, _ = cmd.Flags().GetString("tags")

	focusID := a.focusID()
	tasks := board.Apply(a.store.Tasks(), crit, focusID)
	columns := board.Kanban(tasks, focusID)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"columns":      columns,
			"taskOfTheDay": focusID,
		})
	}
	output.BoardTable(os.Stdout, columns, focusID)
	return nil
}

func runStats(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}

	overview := board.Summary(a.store.Tasks(), time.Now())

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, overview)
	case output.FormatCompact:
		output.OverviewCompact(os.Stdout, overview)
	default:
		output.OverviewTable(os.Stdout, overview)
	}
	return nil
}
