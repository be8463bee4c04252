package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskwise-ai/taskwise/internal/ai"
	"github.com/taskwise-ai/taskwise/internal/clierr"
	"github.com/taskwise-ai/taskwise/internal/output"
	"github.com/taskwise-ai/taskwise/internal/task"
)

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Generate or review a task's image",
}

var imageGenerateCmd = &cobra.Command{
	Use:     "generate ID",
	Aliases: []string{"gen"},
	Short:   "Generate an image for a task",
	Long: `Generates an image for the task and stores it as a data URI on the
task. The query defaults to the task's stored image hint, if any.`,
	Args: cobra.ExactArgs(1),
	RunE: runImageGenerate,
}

var imageReviewCmd = &cobra.Command{
	Use:   "review ID",
	Short: "Ask the AI how well the task's image fits",
	Args:  cobra.ExactArgs(1),
	RunE:  runImageReview,
}

func init() {
	imageGenerateCmd.Flags().String("query", "", "image query (overrides the stored hint)")
	imageCmd.AddCommand(imageGenerateCmd, imageReviewCmd)
	rootCmd.AddCommand(imageCmd)
}

func runImageGenerate(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}

	t := a.store.Get(args[0])
	if t == nil {
		return task.NotFound(args[0])
	}

	query, _ := cmd.Flags().GetString("query")
	if query == "" {
		query = t.DataAIHint
	}

	result, err := a.aiClient().GenerateImage(cmd.Context(), ai.ImageInput{
		TaskTitle:       t.Title,
		TaskDescription: t.Description,
		ImageQuery:      query,
	})
	if err != nil {
		return err
	}
	if result.ImageDataURI == "" {
		return clierr.New(clierr.AIUnavailable, "the backend returned no image")
	}

	unlock, err := a.lock()
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	defer unlock() //nolint:errcheck // best-effort unlock on exit
	a.store.Load()

	if a.store.Get(t.ID) == nil {
		return task.NotFound(t.ID)
	}
	if err := a.store.SetImage(t.ID, result.ImageDataURI); err != nil {
		return err
	}
	a.st.LogMutation("image", t.ID, query)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, a.store.Get(t.ID))
	}
	output.Messagef(os.Stdout, "Stored generated image on task %s (%d bytes)",
		t.ID, len(result.ImageDataURI))
	return nil
}

func runImageReview(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}

	t := a.store.Get(args[0])
	if t == nil {
		return task.NotFound(args[0])
	}
	if t.ImageURL == "" {
		return clierr.Newf(clierr.InvalidInput, "task %s has no image to review", t.ID)
	}

	result, err := a.aiClient().ReviewImage(cmd.Context(), ai.ReviewInput{
		TaskTitle:       t.Title,
		TaskDescription: t.Description,
		ImageURL:        t.ImageURL,
	})
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, result)
	}
	output.Messagef(os.Stdout, "%s", output.Markdown(result.Feedback))
	if result.SuggestedImageQuery != "" {
		output.Messagef(os.Stdout, "Try: taskwise image generate %s --query %q",
			t.ID, result.SuggestedImageQuery)
	}
	return nil
}
