package ap

import "time"

// EvaluationResult is the scored outcome of a single response.
// It is derived, never mutated: every scoring call produces a fresh value.
type EvaluationResult struct {
	QuestionID string

	// IsCorrect is the binary verdict. For rubric-graded types it means
	// the score reached 80% of the question's max points (inclusive).
	IsCorrect bool

	// ExpectedAnswer is the canonical answer for exact-match types.
	// Empty for rubric-graded types, where no single answer is expected.
	ExpectedAnswer string

	// GivenAnswer is the response's raw answer, echoed for reporting.
	GivenAnswer string

	// Explanation describes how the verdict was reached. For rubric
	// grading this is the grading oracle's explanation; on oracle failure
	// it names the failure instead.
	Explanation string

	// Score is non-negative. Exact-match types score 0.0 or 1.0;
	// rubric-graded types score in [0.0, MaxPoints].
	Score float64

	// Provenance echoed from the Response.
	Confidence float64
	TimeTaken  float64
	TokensUsed int
	ModelName  string
	Timestamp  time.Time
}

// PeriodStats counts results for one time period (exam year).
type PeriodStats struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// ConfidenceStats holds average self-reported confidence split by verdict.
// An empty subset averages to 0.0, not NaN.
type ConfidenceStats struct {
	CorrectAvg   float64 `json:"correct_avg"`
	IncorrectAvg float64 `json:"incorrect_avg"`
}

// TestResults aggregates a batch of evaluation results for one test.
type TestResults struct {
	// Test is the exam identity of the batch. When the evaluator holds no
	// questions this falls back to a fixed default rather than being
	// left empty; see evaluator.EvaluateAll.
	Test APTest

	TotalScore   float64
	NumQuestions int

	// AverageScore is TotalScore / NumQuestions, 0.0 for an empty batch.
	AverageScore float64

	// TimePeriodStats groups accuracy by question year. Periods with no
	// results are absent from the map.
	TimePeriodStats map[string]PeriodStats

	ConfidenceStats ConfidenceStats

	// Results preserves the input order of the evaluated responses.
	Results []EvaluationResult

	Timestamp time.Time
}
