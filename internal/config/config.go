// Package config loads the HTTP server settings from the environment.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Addr is the listen address.
	Addr string

	// RequestTimeout bounds every upstream LLM call made for a request.
	RequestTimeout time.Duration

	// APIKey, when set, is required as a bearer token on /api routes.
	APIKey string

	// StructuredProblems requests problems as JSON. Disable for models
	// without structured output support.
	StructuredProblems bool

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64
}

func Load() Config {
	cfg := Config{
		Addr:               envOr("MATHMENTOR_ADDR", ":8080"),
		RequestTimeout:     envDuration("MATHMENTOR_REQUEST_TIMEOUT", 15*time.Second),
		APIKey:             os.Getenv("MATHMENTOR_API_KEY"),
		StructuredProblems: envBool("MATHMENTOR_STRUCTURED_PROBLEMS", true),
		MaxBodyBytes:       envInt64("MATHMENTOR_MAX_BODY_BYTES", 1<<20),
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}

	return cfg
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("MATHMENTOR_ADDR is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
