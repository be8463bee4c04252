package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/taskwise-ai/taskwise/internal/clierr"
	"github.com/taskwise-ai/taskwise/internal/output"
	"github.com/taskwise-ai/taskwise/internal/suggest"
)

var deleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Removes the task from the collection. Deleting an id that does not
exist is not an error. Suggestions staged for the task are discarded.
Prompts for confirmation in interactive mode.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
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

	id := args[0]
	t := a.store.Get(id)

	yes, _ := cmd.Flags().GetBool("yes")
	if t != nil && !yes {
		ok, err := confirmDelete(id, t.Title)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(os.Stderr, "Canceled.")
			return nil
		}
	}

	if err := a.store.Delete(id); err != nil {
		return err
	}
	if err := suggest.ClearSession(a.st, id); err != nil {
		output.Noticef("clearing staged suggestions failed: %v", err)
	}

	if t == nil {
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, map[string]any{"deleted": false, "id": id})
		}
		output.Messagef(os.Stdout, "No task %s, nothing to delete", id)
		return nil
	}
	a.st.LogMutation("delete", id, t.Title)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"deleted": true, "id": id})
	}
	output.Messagef(os.Stdout, "Deleted task %s: %s", id, t.Title)
	return nil
}

func confirmDelete(id, title string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, clierr.New(clierr.ConfirmationReq,
			"cannot prompt for confirmation (not a terminal); use --yes")
	}
	fmt.Fprintf(os.Stderr, "Delete task %s %q? [y/N] ", id, title)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes", nil
}
