package cmd

import (
	"github.com/spf13/cobra"

	"boardeval/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "boardeval",
	Short: "LLM evaluation harness for AP/SAT question sets",
	Long: "Boardeval scores model responses against standardized-test question sets\n" +
		"(exact-match for multiple choice and grid-ins, rubric-driven LLM grading for\n" +
		"open-ended answers) and aggregates the results into per-exam statistics.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides BOARDEVAL_DB env var)")

	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then BOARDEVAL_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
