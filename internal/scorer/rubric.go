package scorer

import (
	"context"
	"fmt"
	"strings"

	"boardeval/internal/ap"
	"boardeval/internal/llm"
)

// passFraction is the share of max points a rubric-graded response must
// reach (inclusive) to count as correct. It is the single pass/fail
// cutoff for all rubric-graded question types.
const passFraction = 0.8

// RubricScorer grades open-ended responses by prompting the grading
// oracle with the question's rubric and the resolved scoring guide, then
// parsing the reply for the score and explanation.
type RubricScorer struct {
	provider llm.Provider
	cfg      RubricConfig
}

// NewRubricScorer creates a rubric scorer backed by the given provider.
func NewRubricScorer(provider llm.Provider, cfg RubricConfig) (*RubricScorer, error) {
	if provider == nil {
		return nil, fmt.Errorf("rubric scorer requires a grading provider")
	}
	if cfg.PromptTemplate == "" {
		return nil, fmt.Errorf("rubric scorer requires a prompt template")
	}
	// The guide and image-notice injections anchor on these markers;
	// a template without them would silently drop both.
	for _, marker := range []string{"Question:", "Rubric:"} {
		if !strings.Contains(cfg.PromptTemplate, marker) {
			return nil, fmt.Errorf("prompt template is missing the %q section marker", marker)
		}
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 512
	}
	return &RubricScorer{provider: provider, cfg: cfg}, nil
}

func (s *RubricScorer) ScoreQuestion(ctx context.Context, q *ap.Question, resp ap.Response, meta Metadata) (*ap.EvaluationResult, error) {
	score, explanation := s.grade(ctx, q, resp, meta)

	// Clamp into the documented range.
	if score < 0 {
		score = 0
	}
	if q.MaxPoints > 0 && score > q.MaxPoints {
		score = q.MaxPoints
	}

	isCorrect := score >= q.MaxPoints*passFraction

	return &ap.EvaluationResult{
		QuestionID:     resp.QuestionID,
		IsCorrect:      isCorrect,
		ExpectedAnswer: "", // no single expected answer for rubric grading
		GivenAnswer:    resp.Answer,
		Explanation:    explanation,
		Score:          score,
		Confidence:     resp.Confidence,
		TimeTaken:      resp.TimeTaken,
		TokensUsed:     resp.TokensUsed,
		ModelName:      resp.ModelName,
		Timestamp:      resp.Timestamp,
	}, nil
}

// grade runs one grading-oracle call. Oracle failures degrade to a zero
// score with the failure embedded in the explanation, so one bad call
// never aborts a batch.
func (s *RubricScorer) grade(ctx context.Context, q *ap.Question, resp ap.Response, meta Metadata) (float64, string) {
	guide := ResolveScoringGuide(q, meta, s.cfg.SystemGuide)
	prompt := buildGradingPrompt(s.cfg.PromptTemplate, q, resp, guide)

	var images []llm.Image
	switch {
	case len(q.ImageData) > 0 && llm.SupportsVision(s.provider.ModelID()):
		images = append(images, llm.Image{MIMEType: q.ImageMIME, Data: q.ImageData})
	case len(q.ImageData) > 0:
		prompt = injectImageNotice(prompt,
			fmt.Sprintf("the grading model (%s) does not support vision", s.provider.ModelID()))
	case q.Image != "":
		prompt = injectImageNotice(prompt,
			fmt.Sprintf("it could not be loaded (%s)", q.Image))
	}

	req := llm.Request{
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Images:    images,
		MaxTokens: s.cfg.MaxTokens,
	}
	if s.cfg.StructuredReply {
		req.Schema = gradeReplySchema
	}

	reply, err := s.provider.Generate(ctx, req)
	if err != nil {
		return 0.0, fmt.Sprintf("[grading failed: %v]", err)
	}

	if s.cfg.StructuredReply {
		return parseStructuredReply(reply.Content)
	}
	return parseGradeReply(reply.Text())
}
