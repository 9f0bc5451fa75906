package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"boardeval/internal/ap"
	"boardeval/internal/evaluator"
	"boardeval/internal/exam"
	"boardeval/internal/llm"
	"boardeval/internal/scorer"
	"boardeval/internal/store"
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Score a responses file against an exam",
	RunE:  runEval,
}

func init() {
	evalCmd.Flags().String("exam", "", "Path to the exam JSON file (required)")
	evalCmd.Flags().String("responses", "", "Path to the responses JSON file (required)")
	evalCmd.Flags().String("model", "", "Candidate model name recorded with the run (defaults to the responses' model_name)")
	evalCmd.Flags().Bool("save", false, "Persist the run to the results database")
	evalCmd.MarkFlagRequired("exam")
	evalCmd.MarkFlagRequired("responses")
}

func runEval(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	examPath, _ := cmd.Flags().GetString("exam")
	responsesPath, _ := cmd.Flags().GetString("responses")

	ex, err := exam.Load(examPath)
	if err != nil {
		return fmt.Errorf("load exam: %w", err)
	}

	responses, err := exam.LoadResponses(responsesPath)
	if err != nil {
		return fmt.Errorf("load responses: %w", err)
	}

	// The grading provider is only exercised for rubric-graded types;
	// exact-match exams score without one.
	var provider llm.Provider
	if hasRubricGraded(ex.Questions) {
		provider, err = llm.NewProviderFromEnv(ctx)
		if err != nil {
			return fmt.Errorf("grading provider (required for rubric-graded questions): %w", err)
		}
	}

	registry := scorer.NewRegistry(provider, scorer.DefaultConfig())
	ev := evaluator.New(ex.Questions, registry,
		evaluator.WithMetadata(scorer.Metadata(ex.Metadata)))

	results, err := ev.EvaluateAll(ctx, responses)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}

	printResults(results)

	if save, _ := cmd.Flags().GetBool("save"); save {
		modelName, _ := cmd.Flags().GetString("model")
		if modelName == "" && len(responses) > 0 {
			modelName = responses[0].ModelName
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		id, err := st.SaveRun(ctx, modelName, results)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		fmt.Printf("\nSaved run %s\n", id)
	}

	return nil
}

func hasRubricGraded(questions []*ap.Question) bool {
	for _, q := range questions {
		if q.RubricGraded() {
			return true
		}
	}
	return false
}

func printResults(r *ap.TestResults) {
	w := os.Stdout

	fmt.Fprintf(w, "%s\n", r.Test)
	fmt.Fprintf(w, "Questions:  %d\n", r.NumQuestions)
	fmt.Fprintf(w, "Total:      %.2f\n", r.TotalScore)
	fmt.Fprintf(w, "Average:    %.3f\n", r.AverageScore)

	if len(r.TimePeriodStats) > 0 {
		fmt.Fprintln(w, "\nBy period:")
		periods := make([]string, 0, len(r.TimePeriodStats))
		for p := range r.TimePeriodStats {
			periods = append(periods, p)
		}
		sort.Strings(periods)
		for _, p := range periods {
			ps := r.TimePeriodStats[p]
			fmt.Fprintf(w, "  %s: %d/%d correct\n", p, ps.Correct, ps.Total)
		}
	}

	fmt.Fprintf(w, "\nConfidence: %.3f when correct, %.3f when incorrect\n",
		r.ConfidenceStats.CorrectAvg, r.ConfidenceStats.IncorrectAvg)
}
