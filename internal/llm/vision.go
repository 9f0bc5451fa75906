package llm

import "strings"

// visionModels is the set of known vision-capable grading models.
var visionModels = map[string]bool{
	"gpt-4o":                     true,
	"gpt-4o-mini":                true,
	"gpt-4-vision-preview":       true,
	"gpt-4.1":                    true,
	"gpt-4.1-mini":               true,
	"claude-3-5-sonnet-20241022": true,
	"claude-3-5-haiku-20241022":  true,
	"claude-sonnet-4-20250514":   true,
	"claude-haiku-4-5-20251001":  true,
	"gemini-1.5-pro":             true,
	"gemini-1.5-flash":           true,
	"gemini-2.0-flash":           true,
	"gemini-2.5-flash":           true,
	"gemini-2.5-pro":             true,
}

// SupportsVision reports whether the model can accept image input.
// Callers use this to decide between attaching question images and
// injecting a text notice that the image was omitted.
func SupportsVision(modelID string) bool {
	lower := strings.ToLower(modelID)
	if strings.Contains(lower, "vision") || strings.Contains(lower, "multimodal") {
		return true
	}
	return visionModels[modelID]
}
