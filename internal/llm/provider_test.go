package llm

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockText("Find x."),
	)

	resp1, err := mock.Generate(context.Background(), Prompt("", "first", 100))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(resp1.Content))
	assert.Equal(t, 10, resp1.Usage.InputTokens)
	assert.Equal(t, "end", resp1.StopReason)

	resp2, err := mock.Generate(context.Background(), Prompt("", "second", 100))
	require.NoError(t, err)
	assert.Equal(t, "Find x.", resp2.Text())
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	_, err := NewMockProvider().Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockText("ok"))
	_, _ = mock.Generate(context.Background(), Prompt("sys", "hello", 50))

	require.Equal(t, 1, mock.CallCount())
	assert.Equal(t, "sys", mock.LastCall().System)
	assert.Equal(t, "hello", mock.LastCall().Messages[0].Content)
	assert.Equal(t, "mock", mock.ModelID())
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})
	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)
}

func TestResponse_Text(t *testing.T) {
	var nilResp *Response
	assert.Empty(t, nilResp.Text())
	assert.Equal(t, "x = 4", (&Response{Content: json.RawMessage("\n x = 4 \n")}).Text())
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Equal(t, "hint", PurposeFrom(WithPurpose(ctx, "hint")))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}}, false},
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"openrouter with key", Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "or-test"}}, false},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// clearEnv blanks every variable the config loaders read.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"MATHMENTOR_LLM_PROVIDER", "MATHMENTOR_LLM_TIMEOUT",
		"MATHMENTOR_ANTHROPIC_API_KEY", "MATHMENTOR_OPENAI_API_KEY",
		"MATHMENTOR_GEMINI_API_KEY", "MATHMENTOR_OPENROUTER_API_KEY",
		"OPENROUTER_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestResolveConfig(t *testing.T) {
	t.Run("explicit provider wins", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MATHMENTOR_LLM_PROVIDER", "mock")
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("MATHMENTOR_LLM_TIMEOUT", "5s")

		cfg, err := ResolveConfig()
		require.NoError(t, err)
		assert.Equal(t, "mock", cfg.Provider)
		assert.Equal(t, "5s", cfg.Timeout.String())
	})

	t.Run("discovers standard keys in priority order", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
		t.Setenv("GEMINI_API_KEY", "gm")

		cfg, err := ResolveConfig()
		require.NoError(t, err)
		assert.Equal(t, "gemini", cfg.Provider)
		assert.Equal(t, "gm", cfg.Gemini.APIKey)
	})

	t.Run("no keys fails validation", func(t *testing.T) {
		clearEnv(t)
		_, err := ResolveConfig()
		assert.ErrorContains(t, err, "MATHMENTOR_OPENROUTER_API_KEY")
	})
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	_, err = NewProvider(context.Background(), Config{Provider: "carrier-pigeon"}, nil)
	assert.ErrorContains(t, err, "unknown LLM provider")

	cfg := DefaultConfig()
	cfg.OpenRouter.APIKey = "or-test"
	p, err = NewProvider(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg.OpenRouter.Model, p.ModelID())
}
