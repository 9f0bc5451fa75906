package ap

// APTest identifies the exam a question belongs to.
type APTest string

const (
	APUSHistory    APTest = "AP United States History"
	APWorldHistory APTest = "AP World History: Modern"
	APEnglishLit   APTest = "AP English Literature & Composition"
	APEnglishLang  APTest = "AP English Language & Composition"
	APUSGov        APTest = "AP United States Government & Politics"
	APPsychology   APTest = "AP Psychology"
	APCalculusAB   APTest = "AP Calculus AB"
	APCalculusBC   APTest = "AP Calculus BC"
	APBiology      APTest = "AP Biology"
	APHumanGeo     APTest = "AP Human Geography"
	APStatistics   APTest = "AP Statistics"
	SATMath        APTest = "SAT Math"
)

// QuestionType discriminates which scoring strategy applies to a question.
type QuestionType string

const (
	// MultipleChoice is scored by exact-match letter comparison.
	MultipleChoice QuestionType = "multiple_choice"

	// ShortAnswer is rubric-graded by an LLM against per-part criteria.
	ShortAnswer QuestionType = "short_answer"

	// LongAnswer is rubric-graded; AP long essay style.
	LongAnswer QuestionType = "long_answer"

	// FreeResponse is rubric-graded; general open-ended response.
	FreeResponse QuestionType = "free_response"

	// StudentProduced is the SAT grid-in format, scored by numeric
	// comparison against acceptable answers.
	StudentProduced QuestionType = "student_produced"
)

// RubricPart is one labeled sub-part of a scoring rubric.
// Parts are held as an ordered slice so prompt formatting is deterministic.
type RubricPart struct {
	// Label identifies the part, e.g. "A", "B", "Thesis".
	Label string

	// Criteria describes what earns the points.
	Criteria string

	// Points is the point value of this part.
	Points float64

	// Examples holds sample answers that satisfy the criteria.
	// May be empty.
	Examples []string
}

// Question represents one assessable exam item.
// Type determines which fields beyond the common set are populated;
// a Question is immutable once loaded.
type Question struct {
	// ID is unique within an exam, e.g. "ap_us_history_2017_mcq_1".
	ID string

	// Test is the exam this question belongs to.
	Test APTest

	// Type selects the scoring strategy.
	Type QuestionType

	// Text is the question prompt shown to the candidate model.
	Text string

	// Context is an optional passage or preamble preceding the question.
	Context string

	// CorrectAnswer is the canonical answer for exact-match types.
	// Empty for rubric-graded types.
	CorrectAnswer string

	// Explanation is the published explanation of the correct answer.
	Explanation string

	// Difficulty is in [0.0, 1.0].
	Difficulty float64

	// SkillDomain labels the skill being assessed, e.g. "Causation".
	SkillDomain string

	// Year is the exam year. Used as the time-period aggregation key.
	Year int

	// Options maps choice letters to their text.
	// Populated only for MultipleChoice.
	Options map[string]string

	// MaxPoints is the maximum score for rubric-graded types.
	MaxPoints float64

	// Rubric holds the scoring rubric parts in display order.
	// Populated only for rubric-graded types.
	Rubric []RubricPart

	// ScoringGuide is an optional question-level scoring guide. When
	// non-empty it takes precedence over test- and system-level guides.
	ScoringGuide string

	// ExemplarAnswers maps part labels to exemplar answers.
	ExemplarAnswers map[string]string

	// AcceptableAnswers lists all accepted answers for StudentProduced
	// questions, e.g. ["1/2", "0.5", ".5"].
	AcceptableAnswers []string

	// Tolerance, when non-nil, allows numeric answers within
	// |given-acceptable| <= *Tolerance to count as correct.
	Tolerance *float64

	// Image is an optional image reference for the question.
	Image string

	// ImageData holds the loaded image bytes, when the loader resolved
	// Image. Empty if no image or the image could not be loaded.
	ImageData []byte

	// ImageMIME is the media type of ImageData, e.g. "image/png".
	ImageMIME string
}

// RubricGraded reports whether this question's type is graded against a
// rubric by the grading oracle.
func (q *Question) RubricGraded() bool {
	switch q.Type {
	case ShortAnswer, LongAnswer, FreeResponse:
		return true
	}
	return false
}
