package llm

import (
	"os"
	"strconv"
	"time"
)

const (
	DefaultEndpoint = "http://localhost:11434"
	DefaultModel    = "llama-guard3:8b"
)

// LLMConfig holds all configuration for the classifier backend.
type LLMConfig struct {
	Endpoint       string
	Model          string
	TimeoutMs      int
	MaxRetries     int
	RetryBackoffMs int // delay before the first retry; zero retries at once
	LogCalls       bool
}

// DefaultConfig returns an LLMConfig pointing at a local Ollama instance.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Endpoint:       DefaultEndpoint,
		Model:          DefaultModel,
		TimeoutMs:      60000,
		MaxRetries:     0,
		RetryBackoffMs: 250,
		LogCalls:       false,
	}
}

// ApplyEnv overrides cfg with any GUARD_* variables that are set and valid.
func ApplyEnv(cfg *LLMConfig) {
	if v := os.Getenv("GUARD_OLLAMA_URL"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("GUARD_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("GUARD_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("GUARD_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("GUARD_RETRY_BACKOFF_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RetryBackoffMs = n
		}
	}
	if v := os.Getenv("GUARD_LOG_CALLS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogCalls = b
		}
	}
}

// Timeout returns the per-attempt timeout. Zero means no deadline.
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// RetryPolicy derives the host retry policy from the config.
func (c LLMConfig) RetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: c.MaxRetries,
		Timeout:    c.Timeout(),
		Backoff:    time.Duration(c.RetryBackoffMs) * time.Millisecond,
	}
}
