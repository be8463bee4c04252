package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/taskwise-ai/taskwise/internal/clierr"
	"github.com/taskwise-ai/taskwise/internal/date"
	"github.com/taskwise-ai/taskwise/internal/output"
	"github.com/taskwise-ai/taskwise/internal/suggest"
	"github.com/taskwise-ai/taskwise/internal/task"
)

var createCmd = &cobra.Command{
	Use:     "create [TITLE]",
	Aliases: []string{"add"},
	Short:   "Create a new task",
	Long: `Creates a new task with the given title and optional fields.

Title can be provided as a positional argument or via --title flag.
Suggestions previously staged with 'taskwise assist --new --apply' are
merged into the task and cleared, unless --no-suggestions is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().String("title", "", "task title (alternative to positional argument)")
	createCmd.Flags().String("body", "", "task description (markdown)")
	createCmd.Flags().String("priority", "", "task priority (default from config)")
	createCmd.Flags().String("due", "", "due date (YYYY-MM-DD)")
	createCmd.Flags().String("reminder", "", "reminder date (YYYY-MM-DD)")
	createCmd.Flags().StringSlice("tags", nil, "comma-separated tags")
	createCmd.Flags().String("delegate", "", "name of the person the task is delegated to")
	createCmd.Flags().StringSlice("subtask", nil, "subtask text (repeatable)")
	createCmd.Flags().Bool("no-suggestions", false, "ignore staged suggestions")
	createCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "tag":
			name = "tags"
		case "description":
			name = "body"
		}
		return pflag.NormalizedName(name)
	})
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
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

	title, err := resolveCreateTitle(cmd, args)
	if err != nil {
		return err
	}

	t := &task.Task{
		Title:    title,
		Priority: task.Priority(a.cfg.Defaults.Priority),
		Subtasks: []task.Subtask{},
		Tags:     []string{},
	}
	if err := applyTaskFlags(cmd, t); err != nil {
		return err
	}

	skipStaged, _ := cmd.Flags().GetBool("no-suggestions")
	staged, err := suggest.LoadSession(a.st, suggest.NewTaskKey)
	if err != nil {
		return err
	}
	if !skipStaged && !staged.Empty() {
		staged.Apply(t, task.NewID, output.Noticef)
	}
	if !staged.Empty() {
		if err := suggest.ClearSession(a.st, suggest.NewTaskKey); err != nil {
			output.Noticef("clearing staged suggestions failed: %v", err)
		}
	}

	if err := task.ValidateTagCap(t.Tags); err != nil {
		return err
	}
	if err := task.ValidateSubtaskCap(len(t.Subtasks)); err != nil {
		return err
	}

	created, err := a.store.Create(t)
	if err != nil {
		return err
	}
	a.st.LogMutation("create", created.ID, created.Title)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, created)
	}
	output.Messagef(os.Stdout, "Created task %s: %s", created.ID, created.Title)
	return nil
}

func resolveCreateTitle(cmd *cobra.Command, args []string) (string, error) {
	title, _ := cmd.Flags().GetString("title")
	if len(args) > 0 {
		if title != "" {
			return "", clierr.New(clierr.InvalidInput,
				"title provided both as argument and --title flag")
		}
		title = args[0]
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return "", clierr.New(clierr.InvalidInput, "title is required")
	}
	return title, nil
}

// applyTaskFlags copies set flags onto t. Used by both create and edit, so
// only flags the user actually set are touched.
func applyTaskFlags(cmd *cobra.Command, t *task.Task) error {
	flags := cmd.Flags()

	if flags.Changed("body") {
		t.Description, _ = flags.GetString("body")
	}
	if flags.Changed("priority") {
		p, _ := flags.GetString("priority")
		if err := task.ValidatePriority(p); err != nil {
			return err
		}
		t.Priority = task.Priority(p)
	}
	if flags.Changed("due") {
		raw, _ := flags.GetString("due")
		d, err := date.Parse(raw)
		if err != nil {
			return task.FormatDate("due", raw, err)
		}
		t.DueDate = &d
	}
	if flags.Changed("reminder") {
		raw, _ := flags.GetString("reminder")
		d, err := date.Parse(raw)
		if err != nil {
			return task.FormatDate("reminder", raw, err)
		}
		t.ReminderDate = &d
	}
	if flags.Changed("tags") {
		tags, _ := flags.GetStringSlice("tags")
		t.Tags = normalizeTags(tags)
	}
	if flags.Changed("delegate") {
		t.DelegatedTo, _ = flags.GetString("delegate")
	}
	if flags.Changed("subtask") {
		texts, _ := flags.GetStringSlice("subtask")
		for _, text := range texts {
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}
			t.Subtasks = append(t.Subtasks, task.Subtask{ID: task.NewID(), Text: text})
		}
	}
	return nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
