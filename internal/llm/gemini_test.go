package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	assert.Equal(t, "gemini-2.0-flash", resolveModel("gemini-flash", geminiModels))
	assert.Equal(t, "gemini-2.0-pro", resolveModel("gemini-pro", geminiModels))
	assert.Equal(t, "gemini-2.5-flash", resolveModel("gemini-2.5-flash", geminiModels))
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"problem":    map[string]any{"type": "string", "description": "problem text"},
			"difficulty": map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
			"steps": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"stars": map[string]any{"type": "integer"},
		},
		"required": []any{"problem"},
	}

	schema := buildGeminiSchema(def)

	assert.Equal(t, genai.TypeObject, schema.Type)
	require.Len(t, schema.Properties, 4)
	assert.Equal(t, genai.TypeString, schema.Properties["problem"].Type)
	assert.Equal(t, "problem text", schema.Properties["problem"].Description)
	assert.Equal(t, []string{"easy", "medium", "hard"}, schema.Properties["difficulty"].Enum)
	assert.Equal(t, genai.TypeArray, schema.Properties["steps"].Type)
	assert.Equal(t, genai.TypeString, schema.Properties["steps"].Items.Type)
	assert.Equal(t, genai.TypeInteger, schema.Properties["stars"].Type)
	assert.Equal(t, []string{"problem"}, schema.Required)
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	_, err := NewGeminiProvider(t.Context(), GeminiConfig{Model: "gemini-flash"})
	assert.Error(t, err)
}

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGeminiProvider(t.Context(), GeminiConfig{APIKey: "test-key", Model: "gemini-flash", BaseURL: server.URL + "/"})
	require.NoError(t, err)
	return p
}

func geminiReply(text, finish string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content":      map[string]any{"role": "model", "parts": []map[string]any{{"text": text}}},
				"finishReason": finish,
			}},
			"usageMetadata": map[string]any{"promptTokenCount": 20, "candidatesTokenCount": 8, "totalTokenCount": 28},
		})
	}
}

func TestGeminiProvider_Problem(t *testing.T) {
	p := newTestGeminiProvider(t, geminiReply("```json\n{\"problem\":\"Find the mean of 2, 4 and 9.\"}\n```", "STOP"))

	req := Prompt("You are a mathematics teacher.", "Generate an easy mean problem.", 256)
	req.Schema = problemSchema()
	resp, err := p.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"problem":"Find the mean of 2, 4 and 9."}`, string(resp.Content))
	assert.Equal(t, 28, resp.Usage.TotalTokens)
	assert.Equal(t, "gemini-2.0-flash", resp.Model)
}

func TestGeminiProvider_BlockedReply(t *testing.T) {
	p := newTestGeminiProvider(t, geminiReply("", "SAFETY"))
	_, err := p.Generate(context.Background(), Prompt("", "hint", 64))
	var inv *ErrInvalidResponse
	require.ErrorAs(t, err, &inv)
	assert.Contains(t, err.Error(), "SAFETY")
}

func TestGeminiProvider_Errors(t *testing.T) {
	status := func(code int) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(code)
			json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": code, "message": "nope"}})
		}
	}

	_, err := newTestGeminiProvider(t, status(http.StatusTooManyRequests)).Generate(context.Background(), Prompt("", "x", 8))
	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)

	_, err = newTestGeminiProvider(t, status(http.StatusForbidden)).Generate(context.Background(), Prompt("", "x", 8))
	var rejected *ErrRequestRejected
	assert.ErrorAs(t, err, &rejected)

	_, err = newTestGeminiProvider(t, status(http.StatusServiceUnavailable)).Generate(context.Background(), Prompt("", "x", 8))
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
}

func TestStringList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, stringList([]any{"a", 1, "b"}))
	assert.Equal(t, []string{"x"}, stringList([]string{"x"}))
	assert.Nil(t, stringList(nil))
}
