package exam

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"boardeval/internal/ap"
)

const examDoc = `{
  "exam": "AP United States History",
  "metadata": {
    "rubric_override": "Focus on historical accuracy."
  },
  "questions": [
    {
      "id": "mcq_1",
      "question_type": "multiple_choice",
      "question_text": "Which event started the war?",
      "correct_answer": "B",
      "options": {"A": "one", "B": "two", "C": "three", "D": "four"},
      "year": 2017
    },
    {
      "id": "saq_1",
      "question_type": "short_answer",
      "question_text": "Briefly explain one cause.",
      "question_context": "Source: an 1860 editorial.",
      "max_points": 3,
      "year": 2017,
      "rubric": [
        {"label": "A", "criteria": "Identifies a cause", "points": 1},
        {"label": "B", "criteria": "Explains with evidence", "points": 2, "examples": ["tariffs"]}
      ]
    },
    {
      "id": "grid_1",
      "question_type": "student_produced",
      "question_text": "Solve for x.",
      "acceptable_answers": ["1/2", "0.5"],
      "tolerance": 0.01,
      "year": 2020
    }
  ]
}`

func TestParse(t *testing.T) {
	ex, err := Parse([]byte(examDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if ex.Test != ap.APUSHistory {
		t.Errorf("Test = %q, want %q", ex.Test, ap.APUSHistory)
	}
	if ex.Metadata["rubric_override"] != "Focus on historical accuracy." {
		t.Errorf("Metadata = %v", ex.Metadata)
	}
	if len(ex.Questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(ex.Questions))
	}

	mcq := ex.Questions[0]
	if mcq.Type != ap.MultipleChoice || mcq.CorrectAnswer != "B" || len(mcq.Options) != 4 {
		t.Errorf("mcq = %+v", mcq)
	}

	saq := ex.Questions[1]
	if saq.Type != ap.ShortAnswer || saq.MaxPoints != 3 {
		t.Errorf("saq = %+v", saq)
	}
	if len(saq.Rubric) != 2 || saq.Rubric[0].Label != "A" || saq.Rubric[1].Points != 2 {
		t.Errorf("saq rubric = %+v", saq.Rubric)
	}
	if saq.Context != "Source: an 1860 editorial." {
		t.Errorf("saq context = %q", saq.Context)
	}

	grid := ex.Questions[2]
	if grid.Type != ap.StudentProduced || len(grid.AcceptableAnswers) != 2 {
		t.Errorf("grid = %+v", grid)
	}
	if grid.Tolerance == nil || *grid.Tolerance != 0.01 {
		t.Errorf("grid tolerance = %v", grid.Tolerance)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "not json",
			doc:     "not json",
			wantErr: "invalid JSON",
		},
		{
			name:    "missing exam field",
			doc:     `{"questions": []}`,
			wantErr: "schema",
		},
		{
			name:    "question missing id",
			doc:     `{"exam": "SAT Math", "questions": [{"question_type": "multiple_choice", "question_text": "?", "year": 2020}]}`,
			wantErr: "schema",
		},
		{
			name: "duplicate question id",
			doc: `{"exam": "SAT Math", "questions": [
				{"id": "q1", "question_type": "student_produced", "question_text": "?", "correct_answer": "1", "year": 2020},
				{"id": "q1", "question_type": "student_produced", "question_text": "?", "correct_answer": "2", "year": 2020}
			]}`,
			wantErr: "duplicate question id",
		},
		{
			name:    "unknown question type",
			doc:     `{"exam": "SAT Math", "questions": [{"id": "q1", "question_type": "essay", "question_text": "?", "year": 2020}]}`,
			wantErr: "unknown question type",
		},
		{
			name:    "multiple choice without options",
			doc:     `{"exam": "SAT Math", "questions": [{"id": "q1", "question_type": "multiple_choice", "question_text": "?", "correct_answer": "A", "year": 2020}]}`,
			wantErr: "no options",
		},
		{
			name:    "multiple choice without correct answer",
			doc:     `{"exam": "SAT Math", "questions": [{"id": "q1", "question_type": "multiple_choice", "question_text": "?", "options": {"A": "x"}, "year": 2020}]}`,
			wantErr: "no correct answer",
		},
		{
			name:    "grid-in without answers",
			doc:     `{"exam": "SAT Math", "questions": [{"id": "q1", "question_type": "student_produced", "question_text": "?", "year": 2020}]}`,
			wantErr: "no acceptable answers",
		},
		{
			name:    "rubric type without max points",
			doc:     `{"exam": "SAT Math", "questions": [{"id": "q1", "question_type": "short_answer", "question_text": "?", "year": 2020}]}`,
			wantErr: "max_points",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoad_ResolvesImages(t *testing.T) {
	dir := t.TempDir()

	imgBytes := []byte{0x89, 0x50, 0x4e, 0x47}
	if err := os.WriteFile(filepath.Join(dir, "chart.png"), imgBytes, 0o644); err != nil {
		t.Fatal(err)
	}

	doc := `{
  "exam": "AP United States History",
  "questions": [
    {
      "id": "saq_1",
      "question_type": "short_answer",
      "question_text": "Describe the chart.",
      "max_points": 2,
      "year": 2019,
      "image": "chart.png"
    },
    {
      "id": "saq_2",
      "question_type": "short_answer",
      "question_text": "Describe the other chart.",
      "max_points": 2,
      "year": 2019,
      "image": "missing.png"
    }
  ]
}`
	path := filepath.Join(dir, "exam.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	ex, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	loaded := ex.Questions[0]
	if string(loaded.ImageData) != string(imgBytes) {
		t.Errorf("ImageData = %v, want %v", loaded.ImageData, imgBytes)
	}
	if loaded.ImageMIME != "image/png" {
		t.Errorf("ImageMIME = %q, want image/png", loaded.ImageMIME)
	}

	// A missing image file leaves the reference but no data.
	missing := ex.Questions[1]
	if missing.Image != "missing.png" || len(missing.ImageData) != 0 {
		t.Errorf("missing image: ref=%q data=%d bytes", missing.Image, len(missing.ImageData))
	}
}

func TestImageMIME(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"chart.png", "image/png"},
		{"photo.JPG", "image/jpeg"},
		{"photo.jpeg", "image/jpeg"},
		{"anim.gif", "image/gif"},
		{"modern.webp", "image/webp"},
		{"noext", "image/png"},
	}
	for _, tc := range tests {
		if got := imageMIME(tc.name); got != tc.want {
			t.Errorf("imageMIME(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestParseResponses(t *testing.T) {
	doc := `[
  {"question_id": "q1", "answer": "B", "confidence": 0.8, "model_name": "gpt-4o", "timestamp": "2024-05-01T12:00:00Z"},
  {"question_id": "q2", "answer": "2.5", "model_name": "gpt-4o"}
]`

	responses, err := ParseResponses([]byte(doc))
	if err != nil {
		t.Fatalf("ParseResponses: %v", err)
	}
	if len(responses) != 2 {
		t.Fatalf("got %d responses, want 2", len(responses))
	}

	if responses[0].Confidence != 0.8 {
		t.Errorf("Confidence = %v, want 0.8", responses[0].Confidence)
	}
	if responses[0].Timestamp.IsZero() {
		t.Error("timestamp should be parsed")
	}

	// Confidence defaults to full confidence when absent.
	if responses[1].Confidence != 1.0 {
		t.Errorf("default Confidence = %v, want 1.0", responses[1].Confidence)
	}
}

func TestParseResponses_Invalid(t *testing.T) {
	if _, err := ParseResponses([]byte(`[{"answer": "B"}]`)); err == nil || !strings.Contains(err.Error(), "missing question_id") {
		t.Errorf("error = %v, want missing question_id", err)
	}
	if _, err := ParseResponses([]byte(`[{"question_id": "q1", "timestamp": "yesterday"}]`)); err == nil || !strings.Contains(err.Error(), "bad timestamp") {
		t.Errorf("error = %v, want bad timestamp", err)
	}
}
