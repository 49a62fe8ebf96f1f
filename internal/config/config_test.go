package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "promptguard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "llama-guard3:8b", cfg.LLM.Model)
	assert.Empty(t, cfg.Audit.Path)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
llm:
  endpoint: http://guard:11434
  model: llama-guard3:1b
  timeout_ms: 0
  max_retries: 2
  retry_backoff_ms: 0
  log_calls: true
log:
  level: debug
audit:
  path: /var/lib/promptguard/audit.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://guard:11434", cfg.LLM.Endpoint)
	assert.Equal(t, "llama-guard3:1b", cfg.LLM.Model)
	assert.Equal(t, 0, cfg.LLM.TimeoutMs)
	assert.Equal(t, 2, cfg.LLM.MaxRetries)
	assert.Equal(t, 0, cfg.LLM.RetryBackoffMs)
	assert.True(t, cfg.LLM.LogCalls)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/var/lib/promptguard/audit.db", cfg.Audit.Path)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "llm:\n  model: from-file\nlog:\n  level: debug\n")
	t.Setenv("GUARD_MODEL", "from-env")
	t.Setenv("GUARD_LOG_LEVEL", "warn")
	t.Setenv("GUARD_AUDIT_DB", "/tmp/audit.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.LLM.Model)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "/tmp/audit.db", cfg.Audit.Path)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "llm: [unterminated")
	_, err := Load(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"relative endpoint", func(c *Config) { c.LLM.Endpoint = "localhost:11434" }, "absolute http(s) URL"},
		{"ftp endpoint", func(c *Config) { c.LLM.Endpoint = "ftp://host" }, "absolute http(s) URL"},
		{"empty model", func(c *Config) { c.LLM.Model = "" }, "model"},
		{"negative timeout", func(c *Config) { c.LLM.TimeoutMs = -1 }, "timeout_ms"},
		{"negative retries", func(c *Config) { c.LLM.MaxRetries = -1 }, "max_retries"},
		{"negative backoff", func(c *Config) { c.LLM.RetryBackoffMs = -5 }, "retry_backoff_ms"},
		{"bad level", func(c *Config) { c.LogLevel = "verbose" }, "log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
	assert.NoError(t, Default().Validate())
}
