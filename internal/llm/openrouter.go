package llm

import (
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultOpenRouterTitle   = "MathMentor"
)

// OpenRouterProvider talks to OpenRouter's OpenAI-compatible API. Model IDs
// are "vendor/model" and are sent unchanged.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
// Requests carry OpenRouter's attribution headers.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenRouterBaseURL
	}
	if cfg.Title == "" {
		cfg.Title = defaultOpenRouterTitle
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = cfg.BaseURL
	oc.HTTPClient = &http.Client{Transport: attribution{
		base:    http.DefaultTransport,
		referer: cfg.SiteURL,
		title:   cfg.Title,
	}}
	return &OpenRouterProvider{OpenAIProvider: &OpenAIProvider{
		client: openai.NewClientWithConfig(oc),
		model:  cfg.Model,
	}}, nil
}

// attribution adds the HTTP-Referer and X-Title headers OpenRouter uses to
// credit the calling app.
type attribution struct {
	base    http.RoundTripper
	referer string
	title   string
}

func (a attribution) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	if a.referer != "" {
		r.Header.Set("HTTP-Referer", a.referer)
	}
	r.Header.Set("X-Title", a.title)
	return a.base.RoundTrip(r)
}
