package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/taskwise-ai/taskwise/internal/date"
	"github.com/taskwise-ai/taskwise/internal/output"
	"github.com/taskwise-ai/taskwise/internal/storage"
)

var motivationCmd = &cobra.Command{
	Use:   "motivation",
	Short: "Show the motivational quote of the day",
	Long: `Shows a short motivational quote or productivity tip. The quote is
fetched once per day and cached; --refresh forces a new one.`,
	Args: cobra.NoArgs,
	RunE: runMotivation,
}

// motivationRecord caches one quote per calendar day.
type motivationRecord struct {
	Quote string `json:"quote"`
	Date  string `json:"date"`
}

func init() {
	motivationCmd.Flags().Bool("refresh", false, "fetch a fresh quote")
	rootCmd.AddCommand(motivationCmd)
}

func runMotivation(cmd *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}

	today := date.Today().String()
	refresh, _ := cmd.Flags().GetBool("refresh")

	var rec motivationRecord
	if !refresh {
		if ok, err := a.st.Get(storage.KeyMotivation, &rec); err == nil && ok &&
			rec.Date == today && rec.Quote != "" {
			return printMotivation(rec)
		}
	}

	result, err := a.aiClient().DailyMotivation(cmd.Context())
	if err != nil {
		return err
	}

	rec = motivationRecord{Quote: result.TipOrQuote, Date: today}
	if err := a.st.Put(storage.KeyMotivation, rec); err != nil {
		output.Noticef("caching quote failed: %v", err)
	}
	return printMotivation(rec)
}

func printMotivation(rec motivationRecord) error {
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, rec)
	}
	output.Messagef(os.Stdout, "%s", output.Quote(rec.Quote))
	return nil
}
