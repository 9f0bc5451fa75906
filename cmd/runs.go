package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"boardeval/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List saved evaluation runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		runs, err := st.ListRuns(cmd.Context())
		if err != nil {
			return fmt.Errorf("list runs: %w", err)
		}

		if len(runs) == 0 {
			fmt.Println("No saved runs.")
			return nil
		}

		for _, r := range runs {
			fmt.Printf("%s  %s  %-16s  %3d questions  %5.1f%%  %s\n",
				r.CreatedAt.Format("2006-01-02 15:04"), r.ID[:8],
				r.ModelName, r.NumQuestions, r.Accuracy(), r.Exam)
		}
		return nil
	},
}
