package scorer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"boardeval/internal/ap"
	"boardeval/internal/llm"
)

// visionProvider wraps a MockProvider under a vision-capable model ID.
type visionProvider struct {
	*llm.MockProvider
}

func (p *visionProvider) ModelID() string { return "gpt-4o" }

func saqQuestion() *ap.Question {
	return &ap.Question{
		ID:        "ap_us_history_2017_saq_1",
		Test:      ap.APUSHistory,
		Type:      ap.ShortAnswer,
		Text:      "Briefly explain one cause of westward expansion.",
		MaxPoints: 3,
		Year:      2017,
		Rubric: []ap.RubricPart{
			{Label: "A", Criteria: "Identifies a cause", Points: 1},
			{Label: "B", Criteria: "Explains the cause with evidence", Points: 2},
		},
	}
}

func newTestRubricScorer(t *testing.T, provider llm.Provider) *RubricScorer {
	t.Helper()
	s, err := NewRubricScorer(provider, DefaultConfig().ShortAnswer)
	if err != nil {
		t.Fatalf("NewRubricScorer: %v", err)
	}
	return s
}

func TestRubricScorer_ParsesOracleReply(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.TextMockResponse("Explanation: Identifies manifest destiny with evidence.\nScore: 3/3"),
	)
	s := newTestRubricScorer(t, mock)

	q := saqQuestion()
	result, err := s.ScoreQuestion(context.Background(), q,
		ap.NewResponse(q.ID, "Manifest destiny drove settlers west.", "gpt-4o"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Score != 3 {
		t.Errorf("Score = %v, want 3", result.Score)
	}
	if !result.IsCorrect {
		t.Error("full score should be correct")
	}
	if result.Explanation != "Identifies manifest destiny with evidence." {
		t.Errorf("Explanation = %q", result.Explanation)
	}
	if result.ExpectedAnswer != "" {
		t.Errorf("ExpectedAnswer = %q, want empty for rubric grading", result.ExpectedAnswer)
	}
}

func TestRubricScorer_PassThreshold(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  bool
	}{
		{"at threshold", "Explanation: Mostly there.\nScore: 4/5", true},
		{"above threshold", "Explanation: Strong.\nScore: 4.5/5", true},
		{"below threshold", "Explanation: Partial.\nScore: 3.5/5", false},
		{"zero", "Explanation: Off topic.\nScore: 0/5", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.TextMockResponse(tc.reply))
			s := newTestRubricScorer(t, mock)

			q := saqQuestion()
			q.MaxPoints = 5
			result, err := s.ScoreQuestion(context.Background(), q,
				ap.NewResponse(q.ID, "answer", "gpt-4o"), nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.IsCorrect != tc.want {
				t.Errorf("IsCorrect = %v, want %v", result.IsCorrect, tc.want)
			}
		})
	}
}

func TestRubricScorer_ClampsScore(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextMockResponse("Explanation: Over-enthusiastic.\nScore: 5/3"))
	s := newTestRubricScorer(t, mock)

	q := saqQuestion()
	result, err := s.ScoreQuestion(context.Background(), q,
		ap.NewResponse(q.ID, "answer", "gpt-4o"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 3 {
		t.Errorf("Score = %v, want clamped to 3", result.Score)
	}
}

func TestRubricScorer_OracleFailureDegrades(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("connection refused")},
	})
	s := newTestRubricScorer(t, mock)

	q := saqQuestion()
	result, err := s.ScoreQuestion(context.Background(), q,
		ap.NewResponse(q.ID, "answer", "gpt-4o"), nil)
	if err != nil {
		t.Fatalf("oracle failures must not surface as errors, got %v", err)
	}
	if result.Score != 0 || result.IsCorrect {
		t.Errorf("failed grading should score 0, got %v correct=%v", result.Score, result.IsCorrect)
	}
	if !strings.HasPrefix(result.Explanation, "[grading failed:") {
		t.Errorf("Explanation = %q, want grading-failed marker", result.Explanation)
	}
}

func TestRubricScorer_GuidePrecedenceInPrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextMockResponse("Explanation: Fine.\nScore: 3/3"))
	s := newTestRubricScorer(t, mock)

	q := saqQuestion()
	meta := Metadata{MetaRubricOverride: "Be strict about evidence."}
	if _, err := s.ScoreQuestion(context.Background(), q,
		ap.NewResponse(q.ID, "answer", "gpt-4o"), meta); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt := mock.Calls[0].Messages[0].Content
	if !strings.Contains(prompt, "General Scoring Criteria:\nBe strict about evidence.") {
		t.Errorf("test-level override not injected into prompt:\n%s", prompt)
	}
}

func TestRubricScorer_ImageWithoutVision(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextMockResponse("Explanation: Fine.\nScore: 3/3"))
	s := newTestRubricScorer(t, mock)

	q := saqQuestion()
	q.Image = "map.png"
	q.ImageData = []byte{0x89, 0x50}
	q.ImageMIME = "image/png"

	if _, err := s.ScoreQuestion(context.Background(), q,
		ap.NewResponse(q.ID, "answer", "gpt-4o"), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	call := mock.Calls[0]
	if len(call.Images) != 0 {
		t.Error("image should not be sent to a non-vision model")
	}
	if !strings.Contains(call.Messages[0].Content, "does not support vision") {
		t.Errorf("prompt missing vision notice:\n%s", call.Messages[0].Content)
	}
}

func TestRubricScorer_ImageWithVision(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextMockResponse("Explanation: Fine.\nScore: 3/3"))
	s := newTestRubricScorer(t, &visionProvider{mock})

	q := saqQuestion()
	q.Image = "map.png"
	q.ImageData = []byte{0x89, 0x50}
	q.ImageMIME = "image/png"

	if _, err := s.ScoreQuestion(context.Background(), q,
		ap.NewResponse(q.ID, "answer", "gpt-4o"), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	call := mock.Calls[0]
	if len(call.Images) != 1 || call.Images[0].MIMEType != "image/png" {
		t.Errorf("image should be attached for a vision model, got %+v", call.Images)
	}
	if strings.Contains(call.Messages[0].Content, "[Note: an image") {
		t.Error("no notice expected when the image is attached")
	}
}

func TestRubricScorer_UnloadedImage(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextMockResponse("Explanation: Fine.\nScore: 3/3"))
	s := newTestRubricScorer(t, mock)

	q := saqQuestion()
	q.Image = "missing.png"

	if _, err := s.ScoreQuestion(context.Background(), q,
		ap.NewResponse(q.ID, "answer", "gpt-4o"), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(mock.Calls[0].Messages[0].Content, "it could not be loaded (missing.png)") {
		t.Errorf("prompt missing load-failure notice:\n%s", mock.Calls[0].Messages[0].Content)
	}
}

func TestRubricScorer_StructuredReply(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"explanation":"Identifies the cause with evidence.","score":2.5}`),
	})
	cfg := DefaultConfig().ShortAnswer
	cfg.StructuredReply = true
	s, err := NewRubricScorer(mock, cfg)
	if err != nil {
		t.Fatalf("NewRubricScorer: %v", err)
	}

	q := saqQuestion()
	result, err := s.ScoreQuestion(context.Background(), q,
		ap.NewResponse(q.ID, "answer", "gpt-4o"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Score != 2.5 {
		t.Errorf("Score = %v, want 2.5", result.Score)
	}
	if !result.IsCorrect {
		t.Error("2.5/3 should pass the threshold")
	}
	if result.Explanation != "Identifies the cause with evidence." {
		t.Errorf("Explanation = %q", result.Explanation)
	}

	call := mock.Calls[0]
	if call.Schema == nil || call.Schema.Name != "grade-reply" {
		t.Errorf("structured mode should request the grade-reply schema, got %+v", call.Schema)
	}
}

func TestRubricScorer_StructuredReplyMalformed(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`not json`),
	})
	cfg := DefaultConfig().ShortAnswer
	cfg.StructuredReply = true
	s, err := NewRubricScorer(mock, cfg)
	if err != nil {
		t.Fatalf("NewRubricScorer: %v", err)
	}

	q := saqQuestion()
	result, err := s.ScoreQuestion(context.Background(), q,
		ap.NewResponse(q.ID, "answer", "gpt-4o"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 0 || !strings.HasPrefix(result.Explanation, "[grading failed:") {
		t.Errorf("malformed reply should degrade, got %v / %q", result.Score, result.Explanation)
	}
}

func TestRubricScorer_FreeTextModeRequestsNoSchema(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextMockResponse("Explanation: Fine.\nScore: 3/3"))
	s := newTestRubricScorer(t, mock)

	q := saqQuestion()
	if _, err := s.ScoreQuestion(context.Background(), q,
		ap.NewResponse(q.ID, "answer", "gpt-4o"), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.Calls[0].Schema != nil {
		t.Error("free-text mode should not request a schema")
	}
}

func TestNewRubricScorer_Validation(t *testing.T) {
	if _, err := NewRubricScorer(nil, DefaultConfig().ShortAnswer); err == nil {
		t.Error("nil provider should be rejected")
	}
	if _, err := NewRubricScorer(llm.NewMockProvider(), RubricConfig{}); err == nil {
		t.Error("empty prompt template should be rejected")
	}

	// Templates without the injection anchors fail fast instead of
	// silently dropping the scoring guide and image notice.
	noRubric := RubricConfig{PromptTemplate: "Question:\n{question_text}\n{response}"}
	if _, err := NewRubricScorer(llm.NewMockProvider(), noRubric); err == nil ||
		!strings.Contains(err.Error(), `"Rubric:"`) {
		t.Errorf("template without Rubric: marker should be rejected, got %v", err)
	}
	noQuestion := RubricConfig{PromptTemplate: "Rubric:\n{rubric}\n{response}"}
	if _, err := NewRubricScorer(llm.NewMockProvider(), noQuestion); err == nil ||
		!strings.Contains(err.Error(), `"Question:"`) {
		t.Errorf("template without Question: marker should be rejected, got %v", err)
	}
}
