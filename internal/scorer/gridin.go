package scorer

import (
	"context"
	"math"
	"strconv"
	"strings"

	"boardeval/internal/ap"
)

// GridInScorer scores SAT student-produced response (grid-in) questions.
// The answer matches when it equals any acceptable answer, either as a
// number within the question's tolerance or, for values that don't parse
// as numbers, by exact string comparison.
type GridInScorer struct{}

func (s *GridInScorer) ScoreQuestion(_ context.Context, q *ap.Question, resp ap.Response, _ Metadata) (*ap.EvaluationResult, error) {
	given := strings.TrimSpace(resp.Answer)

	candidates := q.AcceptableAnswers
	if len(candidates) == 0 && strings.TrimSpace(q.CorrectAnswer) != "" {
		candidates = []string{q.CorrectAnswer}
	}

	tolerance := 0.0
	if q.Tolerance != nil {
		tolerance = *q.Tolerance
	}

	isCorrect := false
	for _, cand := range candidates {
		if answersMatch(given, strings.TrimSpace(cand), tolerance) {
			isCorrect = true
			break
		}
	}

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

// answersMatch compares a given answer against one acceptable answer.
// When both parse as numbers the comparison is |given-acceptable| <=
// tolerance; otherwise it falls back to exact string equality.
func answersMatch(given, acceptable string, tolerance float64) bool {
	if given == "" {
		return false
	}

	g, gErr := parseNumber(given)
	a, aErr := parseNumber(acceptable)
	if gErr == nil && aErr == nil {
		return math.Abs(g-a) <= tolerance
	}

	return given == acceptable
}

// parseNumber parses a decimal or a/b fraction into a float64.
// Grid-in answer sheets accept both forms for the same value.
func parseNumber(s string) (float64, error) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err != nil {
			return 0, err
		}
		d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err != nil {
			return 0, err
		}
		if d == 0 {
			return 0, strconv.ErrSyntax
		}
		return n / d, nil
	}
	return strconv.ParseFloat(s, 64)
}
