package scorer

import "boardeval/internal/llm"

// RubricConfig configures one rubric-graded question type.
type RubricConfig struct {
	// PromptTemplate is the grading prompt with {question_text},
	// {rubric}, {response} and {max_points} placeholders. It must
	// contain the "Question:" and "Rubric:" section markers, which
	// anchor the image notice and scoring-guide injections.
	PromptTemplate string

	// SystemGuide is the system-level scoring guide used when neither
	// the question nor the test metadata supplies one. May be empty.
	SystemGuide string

	// MaxTokens is the token budget for the grading reply.
	MaxTokens int

	// StructuredReply requests the grading reply through the provider's
	// structured-output mechanism as schema-validated JSON instead of
	// the free-text "Score: n/m" format. Useful with graders that drift
	// from the reply format.
	StructuredReply bool
}

// gradeReplySchema is the structured-output schema for grading replies,
// enforced by the provider when StructuredReply is enabled.
var gradeReplySchema = &llm.Schema{
	Name:        "grade-reply",
	Description: "Rubric grading verdict: awarded score and its justification",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":        "string",
				"description": "One paragraph justifying the awarded points",
			},
			"score": map[string]any{
				"type":        "number",
				"minimum":     0,
				"description": "Total points awarded across rubric parts",
			},
		},
		"required":             []any{"explanation", "score"},
		"additionalProperties": false,
	},
}

// Config holds the rubric-grading configuration for all open-ended
// question types. Defaults are resolved once, at registry construction;
// scorers never consult global state.
type Config struct {
	ShortAnswer  RubricConfig
	LongAnswer   RubricConfig
	FreeResponse RubricConfig
}

const gradingPromptTemplate = `You are an experienced exam grader. Grade the student response strictly against the rubric.

Question:
{question_text}

Rubric:
{rubric}

Student Response:
{response}

Award points per rubric part and sum them. The maximum is {max_points} points.
End your reply with exactly two lines:
Explanation: <one paragraph justifying the awarded points>
Score: <awarded>/{max_points}`

// DefaultConfig returns the standard grading configuration. The prompt
// template is shared; the system guides differ per question type.
func DefaultConfig() Config {
	return Config{
		ShortAnswer: RubricConfig{
			PromptTemplate: gradingPromptTemplate,
			SystemGuide: "Award each point independently. A part earns its points when the response " +
				"states a historically defensible claim that answers that part; it does not need " +
				"the exact wording of the rubric examples.",
			MaxTokens: 512,
		},
		LongAnswer: RubricConfig{
			PromptTemplate: gradingPromptTemplate,
			SystemGuide: "Grade holistically within each rubric row: thesis, contextualization, " +
				"evidence, and analysis each earn points only when fully demonstrated.",
			MaxTokens: 768,
		},
		FreeResponse: RubricConfig{
			PromptTemplate: gradingPromptTemplate,
			SystemGuide:    "",
			MaxTokens:      512,
		},
	}
}
