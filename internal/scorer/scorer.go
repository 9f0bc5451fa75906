// Package scorer implements the per-question-type scoring strategies and
// the registry that dispatches questions to them.
package scorer

import (
	"context"
	"fmt"

	"boardeval/internal/ap"
)

// Metadata carries test-level grading metadata. The key "rubric_override"
// supplies a test-level scoring guide that sits between question-level and
// system-level guidance in the resolution order.
type Metadata map[string]string

// Scorer scores one response against one question. Implementations are
// stateless after construction, so a single instance is safe for
// concurrent use.
type Scorer interface {
	// ScoreQuestion produces a fresh EvaluationResult for the response.
	// Grading-oracle failures degrade into a zero-score result rather
	// than an error; an error return indicates the scorer itself could
	// not run (data-integrity or configuration problems).
	ScoreQuestion(ctx context.Context, q *ap.Question, resp ap.Response, meta Metadata) (*ap.EvaluationResult, error)
}

// ErrNoScorer indicates a question type has no registered strategy.
// This is a configuration error and always surfaces to the caller.
type ErrNoScorer struct {
	Type ap.QuestionType
}

func (e *ErrNoScorer) Error() string {
	return fmt.Sprintf("no scorer registered for question type %q", e.Type)
}
