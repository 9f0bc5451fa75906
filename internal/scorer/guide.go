package scorer

import "boardeval/internal/ap"

// MetaRubricOverride is the Metadata key for a test-level scoring guide.
const MetaRubricOverride = "rubric_override"

// ResolveScoringGuide picks the scoring guide text injected into a
// grading prompt. Precedence, first non-empty wins:
//
//  1. the question's own scoring guide
//  2. the test-level override in meta
//  3. the system-level default guide
//
// An empty system guide is a valid "no guidance" result, not an error.
// The function is pure; every rubric-graded type resolves through it with
// its own type-specific system guide.
func ResolveScoringGuide(q *ap.Question, meta Metadata, systemGuide string) string {
	if q.ScoringGuide != "" {
		return q.ScoringGuide
	}
	if meta != nil {
		if override := meta[MetaRubricOverride]; override != "" {
			return override
		}
	}
	return systemGuide
}
