package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/taskwise-ai/taskwise/internal/board"
	"github.com/taskwise-ai/taskwise/internal/task"
)

// TaskCompact renders a list of tasks in one-line-per-record compact format.
func TaskCompact(w io.Writer, tasks []*task.Task, focusID string) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	for _, t := range tasks {
		fmt.Fprintln(w, formatTaskLine(t, focusID))
	}
}

// TaskDetailCompact renders a single task with detail in compact format.
func TaskDetailCompact(w io.Writer, t *task.Task, focusID string) {
	fmt.Fprintln(w, formatTaskLine(t, focusID))

	ts := "  created:" + t.CreatedAt.Format("2006-01-02") +
		" updated:" + t.UpdatedAt.Format("2006-01-02")
	if t.CompletedAt != nil {
		ts += " completed:" + t.CompletedAt.Format("2006-01-02")
	}
	if t.ReminderDate != nil {
		ts += " reminder:" + t.ReminderDate.String()
	}
	fmt.Fprintln(w, ts)

	if t.Description != "" {
		for _, line := range strings.Split(t.Description, "\n") {
			fmt.Fprintln(w, "  "+line)
		}
	}
	for _, s := range t.Subtasks {
		box := "[ ]"
		if s.Completed {
			box = "[x]"
		}
		fmt.Fprintf(w, "  %s %s %s\n", box, s.ID, s.Text)
	}
}

// OverviewCompact renders the stats dashboard in compact format.
func OverviewCompact(w io.Writer, o board.Overview) {
	fmt.Fprintf(w, "%d tasks (%d open, %d done, %d done today)\n",
		o.TotalTasks, o.Incomplete, o.Completed, o.CompletedToday)
	if o.DueToday > 0 || o.Overdue > 0 {
		fmt.Fprintf(w, "due today: %d, overdue: %d\n", o.DueToday, o.Overdue)
	}
	parts := make([]string, 0, len(o.Columns))
	for _, c := range o.Columns {
		parts = append(parts, c.Column+"="+strconv.Itoa(c.Count))
	}
	fmt.Fprintln(w, strings.Join(parts, " "))
}

// formatTaskLine builds the one-line representation of a task.
func formatTaskLine(t *task.Task, focusID string) string {
	line := t.ID + " [" + string(t.Priority) + "] " + t.Title

	if t.ID == focusID {
		line = "* " + line
	}
	if t.Completed {
		line += " (done)"
	} else if done, total := t.SubtaskProgress(); total > 0 {
		line += fmt.Sprintf(" (%d/%d)", done, total)
	}
	if len(t.Tags) > 0 {
		line += " #" + strings.Join(t.Tags, " #")
	}
	if t.DueDate != nil {
		line += " due:" + t.DueDate.String()
	}
	if t.DelegatedTo != "" {
		line += " @" + t.DelegatedTo
	}

	return line
}
