package scorer

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// scoreLine matches the trailing "Score: <awarded>/<max>" line of a
// grading reply. The denominator is informational only.
var scoreLine = regexp.MustCompile(`(?m)Score:\s*([0-9.]+)\s*/\s*[0-9.]+\s*$`)

// explanationLine matches the "Explanation: ..." block.
var explanationLine = regexp.MustCompile(`(?s)Explanation:\s*(.*)`)

// parseGradeReply extracts (score, explanation) from a grading reply.
// When no score line is found the whole reply becomes the explanation and
// the score defaults to 0.0.
func parseGradeReply(reply string) (float64, string) {
	score := 0.0
	if m := scoreLine.FindStringSubmatch(reply); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			score = v
		}
	}

	explanation := strings.TrimSpace(reply)
	if m := explanationLine.FindStringSubmatch(reply); m != nil {
		text := m[1]
		// The explanation runs until the score line, if one follows.
		if idx := strings.Index(text, "\nScore:"); idx >= 0 {
			text = text[:idx]
		}
		explanation = strings.TrimSpace(text)
	}

	return score, explanation
}

// gradeReply mirrors the structured grading-reply schema.
type gradeReply struct {
	Explanation string  `json:"explanation"`
	Score       float64 `json:"score"`
}

// parseStructuredReply extracts (score, explanation) from a
// schema-validated JSON grading reply. A reply that still fails to decode
// degrades like any other grading failure.
func parseStructuredReply(raw json.RawMessage) (float64, string) {
	var r gradeReply
	if err := json.Unmarshal(raw, &r); err != nil {
		return 0.0, fmt.Sprintf("[grading failed: %v]", err)
	}
	return r.Score, r.Explanation
}
