package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func problemSchema() *Schema {
	return &Schema{
		Name:        "test-practice-problem",
		Description: "A practice problem",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"problem": map[string]any{"type": "string", "minLength": 1},
			},
			"required":             []any{"problem"},
			"additionalProperties": false,
		},
	}
}

func solutionSchema() *Schema {
	return &Schema{
		Name: "test-solution",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"difficulty": map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
				"steps": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items":    map[string]any{"type": "string"},
				},
			},
			"required": []any{"steps"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		schema  *Schema
		raw     string
		wantErr bool
	}{
		{"problem", problemSchema(), `{"problem":"Find x."}`, false},
		{"missing problem", problemSchema(), `{}`, true},
		{"empty problem", problemSchema(), `{"problem":""}`, true},
		{"extra field", problemSchema(), `{"problem":"Find x.","answer":"4"}`, true},
		{"wrong type", problemSchema(), `{"problem":42}`, true},
		{"steps", solutionSchema(), `{"steps":["Subtract 3.","Divide by 2."]}`, false},
		{"bad enum", solutionSchema(), `{"difficulty":"extreme","steps":["a"]}`, true},
		{"no steps", solutionSchema(), `{"steps":[]}`, true},
		{"non-string step", solutionSchema(), `{"steps":[1]}`, true},
		{"malformed", problemSchema(), `{not json}`, true},
		{"empty body", problemSchema(), ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateResponse(tt.schema, json.RawMessage(tt.raw))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var inv *ErrInvalidResponse
			require.ErrorAs(t, err, &inv)
			assert.Equal(t, tt.raw, string(inv.Content))
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	body, err := validateResponse(nil, json.RawMessage(`plain hint text`))
	require.NoError(t, err)
	assert.Equal(t, "plain hint text", string(body))
}

func TestValidateResponse_CodeFence(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"json fence", "```json\n{\"problem\":\"Find x.\"}\n```"},
		{"bare fence", "```\n{\"problem\":\"Find x.\"}\n```"},
		{"padded", "  {\"problem\":\"Find x.\"}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := validateResponse(problemSchema(), json.RawMessage(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, `{"problem":"Find x."}`, string(body))
		})
	}
}

func TestValidateResponse_CachesCompiledSchema(t *testing.T) {
	s := problemSchema()
	_, err := validateResponse(s, json.RawMessage(`{"problem":"a"}`))
	require.NoError(t, err)

	cached, ok := compiled.Load(s.Name)
	require.True(t, ok)
	assert.NotNil(t, cached)
}
