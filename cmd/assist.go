package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskwise-ai/taskwise/internal/ai"
	"github.com/taskwise-ai/taskwise/internal/clierr"
	"github.com/taskwise-ai/taskwise/internal/output"
	"github.com/taskwise-ai/taskwise/internal/suggest"
	"github.com/taskwise-ai/taskwise/internal/task"
)

var assistCmd = &cobra.Command{
	Use:   "assist [ID]",
	Short: "Get AI suggestions for a task",
	Long: `Asks the AI backend for suggestions: how to approach the task, an
improved description, generated subtasks, an emoji, a tagline, a task
vibe, a reminder date, and an image query when the task has no image.

Suggestions are only displayed. Stage the ones you want with --apply;
they take effect on the next 'taskwise edit ID' (or 'taskwise create'
when staged with --new) and are discarded after that.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAssist,
}

func init() {
	assistCmd.Flags().Bool("new", false, "suggest for a task not yet created")
	assistCmd.Flags().String("description", "", "task description (with --new)")
	assistCmd.Flags().String("apply", "",
		"stage suggestions: all, or a comma list of description,subtasks,emoji,tagline,vibe,reminder,image")
	assistCmd.Flags().Bool("discard", false, "discard staged suggestions for this task")
	assistCmd.Flags().Bool("staged", false, "show currently staged suggestions")
	rootCmd.AddCommand(assistCmd)
}

func runAssist(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}

	forNew, _ := cmd.Flags().GetBool("new")
	sessionKey := suggest.NewTaskKey
	var target *task.Task
	switch {
	case forNew && len(args) > 0:
		return clierr.New(clierr.InvalidInput, "--new cannot be combined with a task id")
	case forNew:
	case len(args) == 1:
		sessionKey = args[0]
		target = a.store.Get(args[0])
		if target == nil {
			return task.NotFound(args[0])
		}
	default:
		return clierr.New(clierr.InvalidInput, "a task id or --new is required")
	}

	if discard, _ := cmd.Flags().GetBool("discard"); discard {
		if err := suggest.ClearSession(a.st, sessionKey); err != nil {
			return err
		}
		output.Messagef(os.Stdout, "Discarded staged suggestions")
		return nil
	}

	if show, _ := cmd.Flags().GetBool("staged"); show {
		staged, err := suggest.LoadSession(a.st, sessionKey)
		if err != nil {
			return err
		}
		if staged.Empty() {
			return clierr.New(clierr.NothingStaged, "nothing staged for this task")
		}
		return output.JSON(os.Stdout, staged)
	}

	in := ai.AssistInput{}
	if forNew {
		in.Description, _ = cmd.Flags().GetString("description")
		if strings.TrimSpace(in.Description) == "" {
			return clierr.New(clierr.InvalidInput, "--description is required with --new")
		}
	} else {
		in = assistInputFrom(target)
	}

	result, err := a.aiClient().TaskAssistance(cmd.Context(), in)
	if err != nil {
		return err
	}

	applySpec, _ := cmd.Flags().GetString("apply")
	if applySpec != "" {
		staged, err := stagingFrom(result, applySpec)
		if err != nil {
			return err
		}
		if err := suggest.StageSession(a.st, sessionKey, staged); err != nil {
			return err
		}
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, result)
	}
	printAssistResult(result)
	if applySpec != "" {
		output.Messagef(os.Stdout, "")
		if forNew {
			output.Messagef(os.Stdout, "Staged. Apply with: taskwise create \"...\"")
		} else {
			output.Messagef(os.Stdout, "Staged. Apply with: taskwise edit %s", sessionKey)
		}
	}
	return nil
}

// assistInputFrom flattens a task into the request payload. The description
// carries the title so the model sees the whole task in one field.
func assistInputFrom(t *task.Task) ai.AssistInput {
	in := ai.AssistInput{
		Description: t.Title,
		Priority:    string(t.Priority),
		Tags:        t.Tags,
		ImageURL:    t.ImageURL,
	}
	if t.Description != "" {
		in.Description = t.Title + "\n\n" + t.Description
	}
	for _, s := range t.Subtasks {
		in.Subtasks = append(in.Subtasks, s.Text)
	}
	if t.DueDate != nil {
		in.DueDate = t.DueDate.String()
	}
	if t.ReminderDate != nil {
		in.Reminder = t.ReminderDate.String()
	}
	return in
}

// stagingFrom selects the requested suggestion fields out of the result.
func stagingFrom(r *ai.AssistResult, spec string) (suggest.Staging, error) {
	var staged suggest.Staging
	for _, field := range strings.Split(spec, ",") {
		switch strings.TrimSpace(strings.ToLower(field)) {
		case "all":
			staged.ImprovedDescription = r.ImprovedDescription
			staged.GeneratedSubtasks = r.GeneratedSubtasks
			staged.SuggestedEmoji = r.SuggestedEmoji
			staged.SuggestedTagline = r.SuggestedTagline
			staged.SuggestedImageQuery = r.SuggestedImageQuery
			staged.SuggestedTaskVibe = r.SuggestedTaskVibe
			staged.SuggestedReminderDate = r.SuggestedReminderDate
		case "description":
			staged.ImprovedDescription = r.ImprovedDescription
		case "subtasks":
			staged.GeneratedSubtasks = r.GeneratedSubtasks
		case "emoji":
			staged.SuggestedEmoji = r.SuggestedEmoji
		case "tagline":
			staged.SuggestedTagline = r.SuggestedTagline
		case "vibe":
			staged.SuggestedTaskVibe = r.SuggestedTaskVibe
		case "reminder":
			staged.SuggestedReminderDate = r.SuggestedReminderDate
		case "image":
			staged.SuggestedImageQuery = r.SuggestedImageQuery
		default:
			return staged, clierr.Newf(clierr.InvalidInput, "unknown --apply field %q", field)
		}
	}
	if staged.Empty() {
		return staged, clierr.New(clierr.NothingStaged,
			"the selected fields carried no suggestions")
	}
	return staged, nil
}

func printAssistResult(r *ai.AssistResult) {
	w := os.Stdout
	if len(r.ApproachSuggestions) > 0 {
		output.Messagef(w, "How to approach it:")
		for _, s := range r.ApproachSuggestions {
			output.Messagef(w, "  • %s", s)
		}
	}
	if r.ImprovedDescription != "" {
		output.Messagef(w, "\nImproved description:\n%s", output.Markdown(r.ImprovedDescription))
	}
	if len(r.GeneratedSubtasks) > 0 {
		output.Messagef(w, "\nSuggested subtasks:")
		for _, s := range r.GeneratedSubtasks {
			output.Messagef(w, "  [ ] %s", s)
		}
	}
	if r.SuggestedEmoji != "" {
		output.Messagef(w, "\nEmoji: %s", r.SuggestedEmoji)
	}
	if r.SuggestedTagline != "" {
		output.Messagef(w, "Tagline: %s", output.Quote(r.SuggestedTagline))
	}
	if r.SuggestedTaskVibe != "" {
		output.Messagef(w, "Vibe: %s", r.SuggestedTaskVibe)
	}
	if r.SuggestedReminderDate != "" {
		output.Messagef(w, "Reminder: %s", r.SuggestedReminderDate)
	}
	if r.SuggestedImageQuery != "" {
		output.Messagef(w, "Image query: %s", r.SuggestedImageQuery)
	}
	if len(r.ApproachSuggestions) == 0 && r.ImprovedDescription == "" &&
		len(r.GeneratedSubtasks) == 0 {
		output.Messagef(w, "No suggestions this time.")
	}
}
