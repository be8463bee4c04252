package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskwise-ai/taskwise/internal/board"
	"github.com/taskwise-ai/taskwise/internal/task"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	focusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)

	priorityStyles = map[string]lipgloss.Style{
		"high":   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		"medium": lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		"low":    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}

	tagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	vibeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("176")).Italic(true)
)

// DisableColor strips all styling from table output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	doneStyle = lipgloss.NewStyle()
	focusStyle = lipgloss.NewStyle()
	priorityStyles = map[string]lipgloss.Style{}
	tagStyle = lipgloss.NewStyle()
	vibeStyle = lipgloss.NewStyle()
}

const maxTitleCol = 44

// TaskTable renders a list of tasks as a formatted table. The focus task is
// marked with a star in the first column.
func TaskTable(w io.Writer, tasks []*task.Task, focusID string) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	const pad = 2
	idW, prioW, titleW, tagsW, dueW := 10, 10, 7, 6, 12
	for _, t := range tasks {
		idW = max(idW, len(t.ID)+pad)
		prioW = max(prioW, len(t.Priority)+pad)
		titleW = max(titleW, min(len(t.Title)+pad, maxTitleCol+pad))
		tagsW = max(tagsW, min(len(strings.Join(t.Tags, ","))+pad, 30)) //nolint:mnd // max tags column width
	}

	header := fmt.Sprintf("  %-*s %-*s %-*s %-*s %-*s %s",
		idW, "ID", prioW, "PRIORITY", titleW, "TITLE", tagsW, "TAGS", dueW, "DUE", "STATE")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for _, t := range tasks {
		mark := " "
		if t.ID == focusID {
			mark = focusStyle.Render("★")
		}

		title := t.Title
		if len(title) > maxTitleCol {
			title = title[:maxTitleCol-3] + "..."
		}

		tags := strings.Join(t.Tags, ",")
		if tags == "" {
			tags = dimStyle.Render("--")
		} else {
			tags = tagStyle.Render(tags)
		}

		due := dimStyle.Render("--")
		if t.DueDate != nil {
			due = t.DueDate.String()
		}

		state := stateDisplay(t)

		row := fmt.Sprintf("%s %-*s %s %s %s %s %s",
			mark,
			idW, t.ID,
			padRight(styledPriority(string(t.Priority)), prioW),
			padRight(title, titleW),
			padRight(tags, tagsW),
			padRight(due, dueW),
			state)
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

func stateDisplay(t *task.Task) string {
	if t.Completed {
		return doneStyle.Render("done")
	}
	done, total := t.SubtaskProgress()
	if total > 0 {
		return fmt.Sprintf("%d/%d", done, total)
	}
	return dimStyle.Render("open")
}

// TaskDetail renders a single task with full detail.
func TaskDetail(w io.Writer, t *task.Task, focusID string) {
	titleLine := t.Title
	if t.ID == focusID {
		titleLine = "★ " + titleLine
	}
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", min(len(titleLine), 60)))

	field(w, "ID", t.ID)
	field(w, "Priority", styledPriority(string(t.Priority)))
	if t.Completed {
		when := ""
		if t.CompletedAt != nil {
			when = " (" + t.CompletedAt.Format(time.RFC822) + ")"
		}
		field(w, "Status", doneStyle.Render("completed")+when)
	} else {
		field(w, "Status", "open")
	}
	if t.DueDate != nil {
		field(w, "Due", t.DueDate.String())
	}
	if t.ReminderDate != nil {
		field(w, "Reminder", t.ReminderDate.String())
	}
	if len(t.Tags) > 0 {
		field(w, "Tags", tagStyle.Render(strings.Join(t.Tags, ", ")))
	}
	if t.DelegatedTo != "" {
		field(w, "Delegated to", t.DelegatedTo)
	}
	if t.TaskVibe != "" {
		field(w, "Vibe", vibeStyle.Render(t.TaskVibe))
	}
	if t.ImageURL != "" {
		field(w, "Image", truncate(t.ImageURL, 60))
	} else if t.DataAIHint != "" {
		field(w, "Image hint", t.DataAIHint)
	}
	field(w, "Created", t.CreatedAt.Format(time.RFC822))
	field(w, "Updated", t.UpdatedAt.Format(time.RFC822))

	if t.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, Markdown(t.Description))
	}

	if len(t.Subtasks) > 0 {
		fmt.Fprintln(w)
		done, total := t.SubtaskProgress()
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Subtasks (%d/%d)", done, total)))
		for _, s := range t.Subtasks {
			box := "[ ]"
			if s.Completed {
				box = doneStyle.Render("[x]")
			}
			fmt.Fprintf(w, "  %s %s  %s\n", box, s.Text, dimStyle.Render(s.ID))
		}
	}
}

// BoardTable renders the kanban columns as a summary table.
func BoardTable(w io.Writer, columns []board.Column, focusID string) {
	for _, col := range columns {
		fmt.Fprintln(w, headerStyle.Render(strings.ToUpper(col.Key))+
			dimStyle.Render(fmt.Sprintf("  (%d)", len(col.Tasks))))
		if len(col.Tasks) == 0 {
			fmt.Fprintln(w, dimStyle.Render("  (empty)"))
			continue
		}
		for _, t := range col.Tasks {
			mark := "  "
			if t.ID == focusID {
				mark = focusStyle.Render("★ ")
			}
			fmt.Fprintf(w, "  %s%s %s\n", mark, t.Title, dimStyle.Render(t.ID))
		}
	}
}

// OverviewTable renders the stats dashboard.
func OverviewTable(w io.Writer, o board.Overview) {
	fmt.Fprintln(w, headerStyle.Render("Board overview"))
	field(w, "Total", fmt.Sprintf("%d", o.TotalTasks))
	field(w, "Open", fmt.Sprintf("%d", o.Incomplete))
	field(w, "Completed", fmt.Sprintf("%d (%d today)", o.Completed, o.CompletedToday))
	field(w, "Due today", fmt.Sprintf("%d", o.DueToday))
	field(w, "Overdue", fmt.Sprintf("%d", o.Overdue))
	parts := make([]string, 0, len(o.Columns))
	for _, c := range o.Columns {
		parts = append(parts, fmt.Sprintf("%s=%d", c.Column, c.Count))
	}
	field(w, "Columns", strings.Join(parts, " "))
}

func field(w io.Writer, name, value string) {
	fmt.Fprintf(w, "%s %s\n", dimStyle.Render(fmt.Sprintf("%-14s", name+":")), value)
}

func styledPriority(p string) string {
	if style, ok := priorityStyles[p]; ok {
		return style.Render(p)
	}
	return p
}

// padRight pads a possibly-styled string to the given display width.
func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
