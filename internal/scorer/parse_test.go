package scorer

import "testing"

func TestParseGradeReply(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		wantScr  float64
		wantExpl string
	}{
		{
			name:     "well formed reply",
			reply:    "Explanation: The response identifies one cause.\nScore: 2/3",
			wantScr:  2,
			wantExpl: "The response identifies one cause.",
		},
		{
			name:     "fractional score",
			reply:    "Explanation: Partial credit for part b.\nScore: 1.5/3",
			wantScr:  1.5,
			wantExpl: "Partial credit for part b.",
		},
		{
			name:     "multiline explanation",
			reply:    "Explanation: Part a is correct.\nPart b is missing evidence.\nScore: 1/2",
			wantScr:  1,
			wantExpl: "Part a is correct.\nPart b is missing evidence.",
		},
		{
			name:     "preamble before explanation",
			reply:    "Here is my assessment.\n\nExplanation: Good thesis.\nScore: 3/3",
			wantScr:  3,
			wantExpl: "Good thesis.",
		},
		{
			name:     "extra spacing around score",
			reply:    "Explanation: Fine.\nScore:  2 / 3  ",
			wantScr:  2,
			wantExpl: "Fine.",
		},
		{
			name:     "no score line defaults to zero",
			reply:    "The response does not address the prompt.",
			wantScr:  0,
			wantExpl: "The response does not address the prompt.",
		},
		{
			name:     "no explanation label keeps whole reply",
			reply:    "Solid answer overall.\nScore: 2/2",
			wantScr:  2,
			wantExpl: "Solid answer overall.\nScore: 2/2",
		},
		{
			name:     "empty reply",
			reply:    "",
			wantScr:  0,
			wantExpl: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			score, expl := parseGradeReply(tc.reply)
			if score != tc.wantScr {
				t.Errorf("score = %v, want %v", score, tc.wantScr)
			}
			if expl != tc.wantExpl {
				t.Errorf("explanation = %q, want %q", expl, tc.wantExpl)
			}
		})
	}
}
