package scorer

import (
	"strings"
	"testing"

	"boardeval/internal/ap"
)

func TestFormatRubric(t *testing.T) {
	rubric := []ap.RubricPart{
		{Label: "A", Criteria: "Identifies one cause", Points: 1},
		{Label: "B", Criteria: "Explains the effect", Points: 1.5, Examples: []string{"tariff policy", "sectional tension"}},
	}

	got := formatRubric(rubric)
	want := "Part A:\n" +
		"  Criteria: Identifies one cause\n" +
		"  Points: 1\n" +
		"\n" +
		"Part B:\n" +
		"  Criteria: Explains the effect\n" +
		"  Points: 1.5\n" +
		"  Examples: tariff policy, sectional tension"

	if got != want {
		t.Errorf("formatRubric() =\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatRubric_Empty(t *testing.T) {
	if got := formatRubric(nil); got != "No rubric provided" {
		t.Errorf("formatRubric(nil) = %q", got)
	}
}

func TestBuildGradingPrompt(t *testing.T) {
	q := &ap.Question{
		Text:      "Briefly explain one cause of the Civil War.",
		MaxPoints: 3,
		Rubric: []ap.RubricPart{
			{Label: "A", Criteria: "Identifies a cause", Points: 1},
		},
	}
	resp := ap.NewResponse("q1", "Slavery divided the nation.", "gpt-4o")

	prompt := buildGradingPrompt(gradingPromptTemplate, q, resp, "")

	for _, want := range []string{
		"Briefly explain one cause of the Civil War.",
		"Part A:",
		"Slavery divided the nation.",
		"Score: <awarded>/3",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "{") {
		t.Errorf("prompt has unexpanded placeholders:\n%s", prompt)
	}
	if strings.Contains(prompt, "General Scoring Criteria:") {
		t.Errorf("empty guide must not inject criteria section:\n%s", prompt)
	}
}

func TestBuildGradingPrompt_ContextPrepended(t *testing.T) {
	q := &ap.Question{
		Text:      "What does the author argue?",
		Context:   "Source: excerpt from a 1879 pamphlet.",
		MaxPoints: 1,
	}
	resp := ap.NewResponse("q1", "Expansion westward.", "gpt-4o")

	prompt := buildGradingPrompt(gradingPromptTemplate, q, resp, "")

	ctxIdx := strings.Index(prompt, "Source: excerpt from a 1879 pamphlet.")
	qIdx := strings.Index(prompt, "What does the author argue?")
	if ctxIdx < 0 || qIdx < 0 || ctxIdx > qIdx {
		t.Errorf("context should precede question text:\n%s", prompt)
	}
}

func TestBuildGradingPrompt_GuideInjection(t *testing.T) {
	q := &ap.Question{Text: "Q", MaxPoints: 2}
	resp := ap.NewResponse("q1", "A", "gpt-4o")

	prompt := buildGradingPrompt(gradingPromptTemplate, q, resp, "Award partial credit generously.")

	criteriaIdx := strings.Index(prompt, "General Scoring Criteria:\nAward partial credit generously.")
	rubricIdx := strings.Index(prompt, "Rubric:")
	if criteriaIdx < 0 {
		t.Fatalf("guide not injected:\n%s", prompt)
	}
	if rubricIdx < criteriaIdx {
		t.Errorf("criteria section should precede the rubric section:\n%s", prompt)
	}
}

func TestInjectImageNotice(t *testing.T) {
	prompt := "Grade this.\n\nQuestion:\nWhat is shown?\n\nRubric:\nNo rubric provided"

	got := injectImageNotice(prompt, "the grading model (mock) does not support vision")

	if !strings.Contains(got, "[Note: an image is part of this question but the grading model (mock) does not support vision.") {
		t.Errorf("notice missing:\n%s", got)
	}
	if !strings.HasPrefix(got, "Grade this.\n\nQuestion:\n[Note:") {
		t.Errorf("notice should follow the question header:\n%s", got)
	}
}
