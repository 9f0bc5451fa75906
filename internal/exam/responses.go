package exam

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"boardeval/internal/ap"
)

// rawResponse mirrors one entry of a responses file: the recorded output
// of a candidate model run, one object per answered question.
type rawResponse struct {
	QuestionID  string   `json:"question_id"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
	Confidence  *float64 `json:"confidence"`
	TimeTaken   float64  `json:"time_taken"`
	TokensUsed  int      `json:"tokens_used"`
	ModelName   string   `json:"model_name"`
	Timestamp   string   `json:"timestamp"`
}

// LoadResponses reads a responses file into ap.Response values.
// Confidence defaults to 1.0 when absent; timestamps are RFC 3339.
func LoadResponses(path string) ([]ap.Response, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read responses file: %w", err)
	}
	return ParseResponses(data)
}

// ParseResponses decodes a responses document.
func ParseResponses(data []byte) ([]ap.Response, error) {
	var raws []rawResponse
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode responses: %w", err)
	}

	out := make([]ap.Response, 0, len(raws))
	for i, raw := range raws {
		if raw.QuestionID == "" {
			return nil, fmt.Errorf("response %d: missing question_id", i)
		}

		resp := ap.Response{
			QuestionID:  raw.QuestionID,
			Answer:      raw.Answer,
			Explanation: raw.Explanation,
			Confidence:  1.0,
			TimeTaken:   raw.TimeTaken,
			TokensUsed:  raw.TokensUsed,
			ModelName:   raw.ModelName,
		}
		if raw.Confidence != nil {
			resp.Confidence = *raw.Confidence
		}
		if raw.Timestamp != "" {
			t, err := time.Parse(time.RFC3339, raw.Timestamp)
			if err != nil {
				return nil, fmt.Errorf("response %d: bad timestamp: %w", i, err)
			}
			resp.Timestamp = t
		}

		out = append(out, resp)
	}

	return out, nil
}
