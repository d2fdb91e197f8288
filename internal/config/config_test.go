package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"MATHMENTOR_ADDR", "MATHMENTOR_REQUEST_TIMEOUT", "MATHMENTOR_API_KEY", "MATHMENTOR_STRUCTURED_PROBLEMS", "MATHMENTOR_MAX_BODY_BYTES"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Empty(t, cfg.APIKey)
	assert.True(t, cfg.StructuredProblems)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MATHMENTOR_ADDR", "127.0.0.1:9000")
	t.Setenv("MATHMENTOR_REQUEST_TIMEOUT", "30s")
	t.Setenv("MATHMENTOR_API_KEY", "secret")
	t.Setenv("MATHMENTOR_STRUCTURED_PROBLEMS", "false")
	t.Setenv("MATHMENTOR_MAX_BODY_BYTES", "2048")

	cfg := Load()
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.False(t, cfg.StructuredProblems)
	assert.Equal(t, int64(2048), cfg.MaxBodyBytes)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("MATHMENTOR_REQUEST_TIMEOUT", "-5s")
	t.Setenv("MATHMENTOR_STRUCTURED_PROBLEMS", "maybe")
	t.Setenv("MATHMENTOR_MAX_BODY_BYTES", "lots")

	cfg := Load()
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.StructuredProblems)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
}

func TestValidate(t *testing.T) {
	assert.Error(t, Config{}.Validate())
}
