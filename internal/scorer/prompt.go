package scorer

import (
	"fmt"
	"strconv"
	"strings"

	"boardeval/internal/ap"
)

// formatRubric renders rubric parts into the deterministic block embedded
// in the grading prompt. Parts appear in their declared order.
func formatRubric(rubric []ap.RubricPart) string {
	if len(rubric) == 0 {
		return "No rubric provided"
	}

	var b strings.Builder
	for _, part := range rubric {
		fmt.Fprintf(&b, "Part %s:\n", part.Label)
		fmt.Fprintf(&b, "  Criteria: %s\n", part.Criteria)
		fmt.Fprintf(&b, "  Points: %s\n", strconv.FormatFloat(part.Points, 'f', -1, 64))
		if len(part.Examples) > 0 {
			fmt.Fprintf(&b, "  Examples: %s\n", strings.Join(part.Examples, ", "))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// buildGradingPrompt fills the prompt template for one question/response
// pair and injects the resolved scoring guide ahead of the rubric section.
func buildGradingPrompt(tmpl string, q *ap.Question, resp ap.Response, guide string) string {
	questionText := q.Text
	if q.Context != "" {
		questionText = q.Context + "\n\n" + q.Text
	}

	r := strings.NewReplacer(
		"{question_text}", questionText,
		"{rubric}", formatRubric(q.Rubric),
		"{response}", resp.Answer,
		"{max_points}", strconv.FormatFloat(q.MaxPoints, 'f', -1, 64),
	)
	prompt := r.Replace(tmpl)

	if guide != "" {
		prompt = strings.Replace(prompt, "Rubric:",
			"General Scoring Criteria:\n"+guide+"\n\nRubric:", 1)
	}

	return prompt
}

// injectImageNotice tells the grader an image exists but was not sent,
// either because the model lacks vision or the image failed to load.
func injectImageNotice(prompt, reason string) string {
	notice := fmt.Sprintf("\n[Note: an image is part of this question but %s. Evaluate the response on the text content only.]", reason)
	return strings.Replace(prompt, "Question:", "Question:"+notice, 1)
}
