package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func gradeSchema(name string) *Schema {
	return &Schema{
		Name: name,
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"explanation": map[string]any{"type": "string"},
				"score":       map[string]any{"type": "number", "minimum": 0},
			},
			"required":             []any{"explanation", "score"},
			"additionalProperties": false,
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid reply", `{"explanation":"solid","score":2.5}`, false},
		{"missing required field", `{"score":2.5}`, true},
		{"wrong type", `{"explanation":"solid","score":"two"}`, true},
		{"extra field", `{"explanation":"solid","score":2.5,"verdict":"pass"}`, true},
		{"negative score", `{"explanation":"solid","score":-1}`, true},
		{"not json", `not json`, true},
	}

	schema := gradeSchema("validate-reply")
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateResponse(schema, json.RawMessage(tc.raw))
			if tc.wantErr {
				var invalid *ErrInvalidResponse
				if !errors.As(err, &invalid) {
					t.Fatalf("error = %v, want *ErrInvalidResponse", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything`)); err != nil {
		t.Fatalf("nil schema should skip validation, got %v", err)
	}
}

func TestValidateResponse_CachesCompiledSchema(t *testing.T) {
	schema := gradeSchema("validate-reply-cached")
	raw := json.RawMessage(`{"explanation":"ok","score":1}`)

	if err := validateResponse(schema, raw); err != nil {
		t.Fatalf("first validation: %v", err)
	}
	if _, ok := schemaCache.Load(schema.Name); !ok {
		t.Fatal("compiled schema not cached")
	}
	// Second call takes the cache path and still validates.
	if err := validateResponse(schema, json.RawMessage(`{"score":1}`)); err == nil {
		t.Fatal("cached schema should still reject invalid payloads")
	}
}
