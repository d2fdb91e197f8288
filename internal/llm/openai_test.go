package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAIReply(content, finish string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1234567890,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": finish,
			}},
			"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
		})
	}
}

func openAIError(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"type": "server_error", "message": "nope"},
		})
	}
}

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: server.URL + "/v1"})
	require.NoError(t, err)
	return p
}

func TestOpenAIProvider_Problem(t *testing.T) {
	p := newTestOpenAIProvider(t, openAIReply(`{"problem":"Solve 2x + 3 = 11."}`, "stop"))

	req := Prompt("You are a mathematics teacher.", "Generate an easy linear problem.", 256)
	req.Schema = problemSchema()
	resp, err := p.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 40, resp.Usage.InputTokens)
	assert.Equal(t, 25, resp.Usage.OutputTokens)
	assert.Equal(t, "end", resp.StopReason)
	assert.Equal(t, "gpt-4o-mini", resp.Model)
}

func TestOpenAIProvider_SchemaViolation(t *testing.T) {
	p := newTestOpenAIProvider(t, openAIReply(`{"question":"Solve 2x + 3 = 11."}`, "stop"))

	req := Prompt("", "Generate a problem.", 256)
	req.Schema = problemSchema()
	_, err := p.Generate(context.Background(), req)

	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestOpenAIProvider_Truncated(t *testing.T) {
	p := newTestOpenAIProvider(t, openAIReply(`{"problem":"Solve`, "length"))

	req := Prompt("", "Generate a problem.", 4)
	req.Schema = problemSchema()
	_, err := p.Generate(context.Background(), req)

	var maxTok *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &maxTok)
}

func TestOpenAIProvider_SendsSystemPrompt(t *testing.T) {
	var body map[string]any
	reply := openAIReply("true", "stop")
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		reply(w, r)
	})

	resp, err := p.Generate(context.Background(), Prompt(`Respond only with "true" or "false"`, "Is 2x = 8 when x = 4?", 10))
	require.NoError(t, err)
	assert.Equal(t, "true", resp.Text())

	msgs, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "user", msgs[1].(map[string]any)["role"])
}

func TestOpenAIProvider_Errors(t *testing.T) {
	t.Run("rate limit", func(t *testing.T) {
		p := newTestOpenAIProvider(t, openAIError(http.StatusTooManyRequests))
		_, err := p.Generate(context.Background(), Prompt("", "test", 100))
		var rl *ErrRateLimit
		assert.ErrorAs(t, err, &rl)
	})

	t.Run("unknown model is rejected", func(t *testing.T) {
		p := newTestOpenAIProvider(t, openAIError(http.StatusNotFound))
		_, err := p.Generate(context.Background(), Prompt("", "test", 100))
		var rejected *ErrRequestRejected
		require.ErrorAs(t, err, &rejected)
		assert.Equal(t, http.StatusNotFound, rejected.Status)
	})

	t.Run("empty reply", func(t *testing.T) {
		p := newTestOpenAIProvider(t, openAIReply("  ", "stop"))
		_, err := p.Generate(context.Background(), Prompt("", "hint please", 100))
		var inv *ErrInvalidResponse
		assert.ErrorAs(t, err, &inv)
	})

	t.Run("server error", func(t *testing.T) {
		p := newTestOpenAIProvider(t, openAIError(http.StatusBadGateway))
		_, err := p.Generate(context.Background(), Prompt("", "test", 100))
		var unavail *ErrProviderUnavailable
		assert.ErrorAs(t, err, &unavail)
	})
}

func TestNewOpenAIProvider(t *testing.T) {
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", p.ModelID())

	_, err = NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o"})
	assert.Error(t, err)
}

func TestNewOpenRouterProvider(t *testing.T) {
	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "google/gemma-3-12b-it:free"})
	require.NoError(t, err)
	assert.Equal(t, "google/gemma-3-12b-it:free", p.ModelID())

	_, err = NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemma-3-12b-it:free"})
	assert.Error(t, err)
}

func TestOpenRouterProvider_Generate(t *testing.T) {
	var path, model string
	reply := openAIReply("Multiply the base by the height, then halve it.", "stop")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		var body struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		model = body.Model
		reply(w, r)
	}))
	t.Cleanup(server.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   "google/gemma-3-12b-it:free",
		BaseURL: server.URL + "/api/v1",
	})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), Prompt("You are a helpful math tutor.", "hint", 64))
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/chat/completions", path)
	assert.Equal(t, "google/gemma-3-12b-it:free", model)
	assert.Contains(t, resp.Text(), "halve")
}
