package scorer

import (
	"context"
	"fmt"
	"strings"

	"boardeval/internal/ap"
)

// ExactMatchScorer scores multiple choice questions by normalized string
// comparison: trim whitespace, uppercase, compare for equality.
// Deterministic, no external calls.
type ExactMatchScorer struct{}

func (s *ExactMatchScorer) ScoreQuestion(_ context.Context, q *ap.Question, resp ap.Response, _ Metadata) (*ap.EvaluationResult, error) {
	expected := strings.ToUpper(strings.TrimSpace(q.CorrectAnswer))
	given := strings.ToUpper(strings.TrimSpace(resp.Answer))

	// A question with no recorded correct answer never matches.
	isCorrect := expected != "" && given == expected

	score := 0.0
	if isCorrect {
		score = 1.0
	}

	return &ap.EvaluationResult{
		QuestionID:     resp.QuestionID,
		IsCorrect:      isCorrect,
		ExpectedAnswer: q.CorrectAnswer,
		GivenAnswer:    resp.Answer,
		Explanation:    verdictExplanation(q.CorrectAnswer, resp.Answer, isCorrect),
		Score:          score,
		Confidence:     resp.Confidence,
		TimeTaken:      resp.TimeTaken,
		TokensUsed:     resp.TokensUsed,
		ModelName:      resp.ModelName,
		Timestamp:      resp.Timestamp,
	}, nil
}

// verdictExplanation renders the standard explanation line for
// binary-scored questions.
func verdictExplanation(correct, given string, isCorrect bool) string {
	verdict := "Incorrect"
	if isCorrect {
		verdict = "Correct"
	}
	return fmt.Sprintf("Correct answer: %s. Student answer: %s. %s.", correct, given, verdict)
}
