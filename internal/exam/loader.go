// Package exam loads exam documents into typed questions, validating the
// raw JSON against a schema before decoding.
package exam

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"boardeval/internal/ap"
)

// Exam is one loaded exam document: its identity, test-level grading
// metadata, and question set.
type Exam struct {
	Test      ap.APTest
	Metadata  map[string]string
	Questions []*ap.Question
}

// rawQuestion mirrors the question object in the exam JSON format.
type rawQuestion struct {
	ID                string            `json:"id"`
	QuestionType      string            `json:"question_type"`
	QuestionText      string            `json:"question_text"`
	QuestionContext   string            `json:"question_context"`
	CorrectAnswer     string            `json:"correct_answer"`
	Explanation       string            `json:"explanation"`
	Difficulty        float64           `json:"difficulty"`
	SkillDomain       string            `json:"skill_domain"`
	Year              int               `json:"year"`
	Options           map[string]string `json:"options"`
	MaxPoints         float64           `json:"max_points"`
	Rubric            []rawRubricPart   `json:"rubric"`
	ScoringGuide      string            `json:"scoring_guide"`
	ExemplarAnswers   map[string]string `json:"exemplar_answers"`
	AcceptableAnswers []string          `json:"acceptable_answers"`
	Tolerance         *float64          `json:"tolerance"`
	Image             string            `json:"image"`
}

type rawRubricPart struct {
	Label    string   `json:"label"`
	Criteria string   `json:"criteria"`
	Points   float64  `json:"points"`
	Examples []string `json:"examples"`
}

type rawDocument struct {
	Exam      string            `json:"exam"`
	Metadata  map[string]string `json:"metadata"`
	Questions []rawQuestion     `json:"questions"`
}

// Load reads and parses the exam file at path. Question images are
// resolved relative to the file's directory; an image that fails to load
// leaves ImageData empty rather than failing the load (the rubric scorer
// degrades to a text notice).
func Load(path string) (*Exam, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read exam file: %w", err)
	}

	ex, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	dir := filepath.Dir(path)
	for _, q := range ex.Questions {
		if q.Image == "" {
			continue
		}
		img, err := os.ReadFile(filepath.Join(dir, q.Image))
		if err != nil {
			continue
		}
		q.ImageData = img
		q.ImageMIME = imageMIME(q.Image)
	}

	return ex, nil
}

// Parse validates and decodes an exam document.
func Parse(data []byte) (*Exam, error) {
	if err := validateDocument(data); err != nil {
		return nil, err
	}

	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode exam document: %w", err)
	}

	ex := &Exam{
		Test:     ap.APTest(doc.Exam),
		Metadata: doc.Metadata,
	}

	seen := make(map[string]bool, len(doc.Questions))
	for i, raw := range doc.Questions {
		if seen[raw.ID] {
			return nil, fmt.Errorf("duplicate question id %q", raw.ID)
		}
		seen[raw.ID] = true

		q, err := buildQuestion(ex.Test, raw)
		if err != nil {
			return nil, fmt.Errorf("question %d (%s): %w", i, raw.ID, err)
		}
		ex.Questions = append(ex.Questions, q)
	}

	return ex, nil
}

// buildQuestion converts a raw question into a typed one, enforcing the
// variant-specific requirements the document schema cannot express.
func buildQuestion(test ap.APTest, raw rawQuestion) (*ap.Question, error) {
	qt := ap.QuestionType(raw.QuestionType)

	q := &ap.Question{
		ID:                raw.ID,
		Test:              test,
		Type:              qt,
		Text:              raw.QuestionText,
		Context:           raw.QuestionContext,
		CorrectAnswer:     raw.CorrectAnswer,
		Explanation:       raw.Explanation,
		Difficulty:        raw.Difficulty,
		SkillDomain:       raw.SkillDomain,
		Year:              raw.Year,
		Options:           raw.Options,
		MaxPoints:         raw.MaxPoints,
		ScoringGuide:      raw.ScoringGuide,
		ExemplarAnswers:   raw.ExemplarAnswers,
		AcceptableAnswers: raw.AcceptableAnswers,
		Tolerance:         raw.Tolerance,
		Image:             raw.Image,
	}

	for _, p := range raw.Rubric {
		q.Rubric = append(q.Rubric, ap.RubricPart{
			Label:    p.Label,
			Criteria: p.Criteria,
			Points:   p.Points,
			Examples: p.Examples,
		})
	}

	switch qt {
	case ap.MultipleChoice:
		if len(raw.Options) == 0 {
			return nil, fmt.Errorf("multiple choice question has no options")
		}
		if raw.CorrectAnswer == "" {
			return nil, fmt.Errorf("multiple choice question has no correct answer")
		}
	case ap.StudentProduced:
		if len(raw.AcceptableAnswers) == 0 && raw.CorrectAnswer == "" {
			return nil, fmt.Errorf("grid-in question has no acceptable answers")
		}
	case ap.ShortAnswer, ap.LongAnswer, ap.FreeResponse:
		if raw.MaxPoints <= 0 {
			return nil, fmt.Errorf("rubric-graded question needs positive max_points")
		}
	default:
		return nil, fmt.Errorf("unknown question type %q", raw.QuestionType)
	}

	return q, nil
}

// compiledDocumentSchema is compiled once at package init; the schema is
// a literal, so compilation cannot fail at runtime.
var compiledDocumentSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema://exam-document.json", documentSchema); err != nil {
		panic(fmt.Sprintf("add exam document schema: %v", err))
	}
	s, err := c.Compile("schema://exam-document.json")
	if err != nil {
		panic(fmt.Sprintf("compile exam document schema: %v", err))
	}
	return s
}

func validateDocument(data []byte) error {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiledDocumentSchema.Validate(parsed); err != nil {
		return fmt.Errorf("exam document schema: %w", err)
	}
	return nil
}

func imageMIME(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/png"
	}
}
