package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strrl/model-exploder/internal/aggregator"
	"github.com/strrl/model-exploder/internal/db"
)

var statsCmd = &cobra.Command{
	Use:   "stats <expanded.csv>",
	Short: "Summarize an expanded CSV file per intent",
	Long: `Load an expanded utterance file with DuckDB and report, for every intent,
how many rows it has, how many distinct utterances, and how many rows are
duplicates of another.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	database, err := db.GetDB()
	if err != nil {
		return fmt.Errorf("failed to get database: %w", err)
	}

	summary, err := aggregator.NewAggregator(database).Summarize(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File: %s\n", summary.Path)
	fmt.Fprintf(out, "Rows: %d across %d intents (%d duplicates)\n", summary.Rows, len(summary.Intents), summary.DuplicateRows())
	for _, intent := range summary.Intents {
		fmt.Fprintf(out, "  - %s: %d rows, %d distinct, %d duplicates\n",
			intent.Intent, intent.Rows, intent.DistinctUtterances, intent.DuplicateRows)
	}

	return nil
}
