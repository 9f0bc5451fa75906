package llm

import (
	"context"
	"encoding/json"
)

// Provider is the abstraction over the grading oracle's model backend.
// Scorers hand it a grading prompt and get back the raw grader reply;
// parsing the reply is the scorer's job, not the provider's.
type Provider interface {
	// Generate sends a request to the model and returns its response.
	// When the request carries a Schema, the provider uses its native
	// structured output mechanism and the response Content is the
	// validated JSON. Otherwise Content is the raw text reply.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured
	// to use.
	ModelID() string
}

// Request describes one grading call.
type Request struct {
	// System is the system prompt. Sets the grader's role.
	System string

	// Messages is the conversation. Grading is single-turn, so this
	// holds one user message carrying the filled prompt template.
	Messages []Message

	// Images holds question images to attach to the user message.
	// Only attached when the target model is vision-capable; callers
	// should check SupportsVision first and degrade to a text notice
	// otherwise.
	Images []Image

	// Schema is the JSON Schema the response must conform to. Nil for
	// the free-text "Score: n/m" grading format.
	Schema *Schema

	// MaxTokens is the token budget for the reply.
	MaxTokens int

	// Temperature controls randomness. Graders run at 0.0.
	Temperature float64
}

// Message is a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Image is an inline image payload for vision-capable grading models.
type Image struct {
	// MIMEType is the media type, e.g. "image/png".
	MIMEType string

	// Data is the raw image bytes (not base64; providers encode as
	// their SDK requires).
	Data []byte
}

// Schema defines a JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema (tool name for Anthropic, schema name
	// for OpenAI). Kebab-case, e.g. "exam-document".
	Name string

	// Description tells the model what the schema represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the reply. Validated JSON when a Schema was requested,
	// otherwise the raw text wrapped as a JSON string.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to: "end", "max_tokens", "error".
	StopReason string
}

// Text returns the response content as plain text.
func (r *Response) Text() string {
	var s string
	if err := json.Unmarshal(r.Content, &s); err == nil {
		return s
	}
	return string(r.Content)
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
