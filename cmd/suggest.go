package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskwise-ai/taskwise/internal/ai"
	"github.com/taskwise-ai/taskwise/internal/clierr"
	"github.com/taskwise-ai/taskwise/internal/output"
	"github.com/taskwise-ai/taskwise/internal/task"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Let the AI suggest a spontaneous task",
	Long: `Asks the AI backend for a fun or useful spontaneous task and adds
it to your collection. Use --dry-run to just see the idea.`,
	Args: cobra.NoArgs,
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().Bool("dry-run", false, "show the suggestion without creating a task")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}

	result, err := a.aiClient().RandomTask(cmd.Context())
	if err != nil {
		return err
	}
	t, err := draftFromSuggestion(result, a.cfg.Defaults.Priority)
	if err != nil {
		return err
	}

	if dry, _ := cmd.Flags().GetBool("dry-run"); dry {
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, result)
		}
		output.TaskDetail(os.Stdout, t, "")
		return nil
	}

	unlock, err := a.lock()
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	defer unlock() //nolint:errcheck // best-effort unlock on exit
	a.store.Load()

	created, err := a.store.Create(t)
	if err != nil {
		return err
	}
	a.st.LogMutation("suggest", created.ID, created.Title)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, created)
	}
	output.Messagef(os.Stdout, "Added suggested task %s: %s", created.ID, created.Title)
	return nil
}

// draftFromSuggestion builds a task draft from a backend suggestion.
// A suggestion without a title never reaches the store: a 200 response
// whose body decodes to the zero value counts as a backend failure.
func draftFromSuggestion(result *ai.RandomTaskResult, defaultPriority string) (*task.Task, error) {
	title := strings.TrimSpace(result.SuggestedTitle)
	if title == "" {
		return nil, clierr.New(clierr.AIUnavailable, "AI backend returned no task suggestion")
	}

	priority := task.Priority(defaultPriority)
	if result.SuggestedPriority != "" && task.Priority(result.SuggestedPriority).IsValid() {
		priority = task.Priority(result.SuggestedPriority)
	}

	t := &task.Task{
		Title:       title,
		Description: result.SuggestedDescription,
		Priority:    priority,
		Tags:        normalizeTags(result.SuggestedTags),
		Subtasks:    []task.Subtask{},
	}
	for _, text := range result.SuggestedSubtasks {
		t.Subtasks = append(t.Subtasks, task.Subtask{ID: task.NewID(), Text: text})
	}
	if len(t.Tags) > task.MaxTags {
		t.Tags = t.Tags[:task.MaxTags]
	}
	if len(t.Subtasks) > task.MaxSubtasks {
		t.Subtasks = t.Subtasks[:task.MaxSubtasks]
	}
	return t, nil
}
