package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskwise-ai/taskwise/internal/board"
	"github.com/taskwise-ai/taskwise/internal/clierr"
	"github.com/taskwise-ai/taskwise/internal/output"
)

var calendarCmd = &cobra.Command{
	Use:     "calendar [YYYY-MM]",
	Aliases: []string{"cal"},
	Short:   "Show due dates on a month calendar",
	Long: `Shows a month grid with a marker on each day an incomplete task is
due. Defaults to the current month. --day lists the tasks due on a
specific day of the month.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCalendar,
}

func init() {
	calendarCmd.Flags().Int("day", 0, "list tasks due on this day of the month")
	rootCmd.AddCommand(calendarCmd)
}

func runCalendar(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}

	now := time.Now()
	year, month := now.Year(), now.Month()
	if len(args) == 1 {
		parsed, err := time.Parse("2006-01", args[0])
		if err != nil {
			return clierr.Newf(clierr.InvalidDate,
				"invalid month %q, expected YYYY-MM", args[0])
		}
		year, month = parsed.Year(), parsed.Month()
	}

	m := board.CalendarMonth(a.store.Tasks(), year, month)
	focusID := a.focusID()

	if day, _ := cmd.Flags().GetInt("day"); day > 0 {
		if day > m.Days() {
			return clierr.Newf(clierr.InvalidDate,
				"%s has only %d days", month, m.Days())
		}
		tasks := m.Day(day)
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, map[string]any{
				"date":  fmt.Sprintf("%04d-%02d-%02d", year, month, day),
				"tasks": tasks,
			})
		}
		output.TaskTable(os.Stdout, tasks, focusID)
		return nil
	}

	if outputFormat() == output.FormatJSON {
		days := map[string]any{}
		for d := 1; d <= m.Days(); d++ {
			if m.Marked(d) {
				days[fmt.Sprintf("%d", d)] = m.Day(d)
			}
		}
		return output.JSON(os.Stdout, map[string]any{
			"year":  year,
			"month": int(month),
			"days":  days,
		})
	}

	printCalendar(m, year, month, now)

	// List the marked days under the grid.
	for d := 1; d <= m.Days(); d++ {
		if !m.Marked(d) {
			continue
		}
		for _, t := range m.Day(d) {
			output.Messagef(os.Stdout, "  %2d  %s  %s", d, t.ID, t.Title)
		}
	}
	return nil
}

// printCalendar renders the month grid. Days with due tasks carry a marker;
// today is bracketed.
func printCalendar(m board.Month, year int, month time.Month, now time.Time) {
	output.Messagef(os.Stdout, "%s %d", month, year)
	output.Messagef(os.Stdout, " Su  Mo  Tu  We  Th  Fr  Sa")

	var line strings.Builder
	line.WriteString(strings.Repeat("    ", int(m.FirstWeekday())))
	weekday := int(m.FirstWeekday())
	for d := 1; d <= m.Days(); d++ {
		cell := fmt.Sprintf(" %2d ", d)
		if now.Year() == year && now.Month() == month && now.Day() == d {
			cell = fmt.Sprintf("[%2d]", d)
		} else if m.Marked(d) {
			cell = fmt.Sprintf(" %2d•", d)
		}
		line.WriteString(cell)
		weekday++
		if weekday == 7 {
			output.Messagef(os.Stdout, "%s", strings.TrimRight(line.String(), " "))
			line.Reset()
			weekday = 0
		}
	}
	if line.Len() > 0 {
		output.Messagef(os.Stdout, "%s", strings.TrimRight(line.String(), " "))
	}
	output.Messagef(os.Stdout, "")
}
