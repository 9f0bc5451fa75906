package exam

// documentSchema is the JSON Schema every exam file must satisfy before
// decoding. Variant-specific requirements (options for multiple choice,
// acceptable answers for grid-ins) are checked after decoding, where the
// question type is known.
var documentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"exam": map[string]any{
			"type":        "string",
			"description": "Exam identity, e.g. \"AP United States History\"",
		},
		"metadata": map[string]any{
			"type":        "object",
			"description": "Optional test-level grading metadata, e.g. rubric_override",
			"additionalProperties": map[string]any{
				"type": "string",
			},
		},
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{"type": "string", "minLength": 1},
					"question_type": map[string]any{
						"type": "string",
						"enum": []any{
							"multiple_choice",
							"short_answer",
							"long_answer",
							"free_response",
							"student_produced",
						},
					},
					"question_text":    map[string]any{"type": "string"},
					"question_context": map[string]any{"type": "string"},
					"correct_answer":   map[string]any{"type": "string"},
					"explanation":      map[string]any{"type": "string"},
					"difficulty": map[string]any{
						"type":    "number",
						"minimum": 0,
						"maximum": 1,
					},
					"skill_domain": map[string]any{"type": "string"},
					"year":         map[string]any{"type": "integer"},
					"options": map[string]any{
						"type":                 "object",
						"additionalProperties": map[string]any{"type": "string"},
					},
					"max_points": map[string]any{
						"type":             "number",
						"exclusiveMinimum": 0,
					},
					"rubric": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"label":    map[string]any{"type": "string", "minLength": 1},
								"criteria": map[string]any{"type": "string"},
								"points":   map[string]any{"type": "number"},
								"examples": map[string]any{
									"type":  "array",
									"items": map[string]any{"type": "string"},
								},
							},
							"required": []any{"label", "criteria", "points"},
						},
					},
					"scoring_guide": map[string]any{"type": "string"},
					"exemplar_answers": map[string]any{
						"type":                 "object",
						"additionalProperties": map[string]any{"type": "string"},
					},
					"acceptable_answers": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"tolerance": map[string]any{
						"type":    "number",
						"minimum": 0,
					},
					"image": map[string]any{"type": "string"},
				},
				"required": []any{"id", "question_type", "question_text", "year"},
			},
		},
	},
	"required": []any{"exam", "questions"},
}
