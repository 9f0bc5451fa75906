package ap

import "time"

// Response is one model's answer to one question, with provenance.
type Response struct {
	// QuestionID references the Question this response answers.
	QuestionID string

	// Answer is the model's raw answer text. For multiple choice this is
	// the chosen letter; for grid-in a numeric string; for rubric-graded
	// types the full written response.
	Answer string

	// Explanation is the model's own reasoning, if it produced one.
	Explanation string

	// Confidence is the model's self-reported confidence in [0.0, 1.0].
	Confidence float64

	// TimeTaken is how long the model took to answer, in seconds.
	TimeTaken float64

	// TokensUsed is the token count of the generation, when known.
	TokensUsed int

	// ModelName identifies the candidate model, e.g. "gpt-4o".
	ModelName string

	// Timestamp is when the response was produced.
	Timestamp time.Time
}

// NewResponse creates a Response with the default confidence of 1.0 and
// the current time.
func NewResponse(questionID, answer, modelName string) Response {
	return Response{
		QuestionID: questionID,
		Answer:     answer,
		Confidence: 1.0,
		ModelName:  modelName,
		Timestamp:  time.Now(),
	}
}
