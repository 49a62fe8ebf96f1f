package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/alexanderramin/promptguard/internal/llm"
	"gopkg.in/yaml.v3"
)

// Config holds everything the promptguard process resolves at startup.
type Config struct {
	LLM      llm.LLMConfig
	LogLevel string
	Audit    AuditConfig
}

// AuditConfig controls the verdict ledger. An empty Path disables it.
type AuditConfig struct {
	Path string
}

// fileConfig mirrors the YAML layout. Pointer fields distinguish "unset"
// from zero values so the file only overrides what it names.
type fileConfig struct {
	LLM struct {
		Endpoint       string `yaml:"endpoint"`
		Model          string `yaml:"model"`
		TimeoutMs      *int   `yaml:"timeout_ms"`
		MaxRetries     *int   `yaml:"max_retries"`
		RetryBackoffMs *int   `yaml:"retry_backoff_ms"`
		LogCalls       *bool  `yaml:"log_calls"`
	} `yaml:"llm"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Audit struct {
		Path string `yaml:"path"`
	} `yaml:"audit"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		LLM:      llm.DefaultConfig(),
		LogLevel: "info",
	}
}

// PathFromEnv returns the config file named by GUARD_CONFIG, if any.
func PathFromEnv() string {
	return os.Getenv("GUARD_CONFIG")
}

// Load resolves configuration from defaults, the YAML file at path and
// then the environment. A missing file is not an error; an empty path
// skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	llm.ApplyEnv(&cfg.LLM)
	if v := os.Getenv("GUARD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("GUARD_AUDIT_DB"); v != "" {
		cfg.Audit.Path = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	if fc.LLM.Endpoint != "" {
		cfg.LLM.Endpoint = fc.LLM.Endpoint
	}
	if fc.LLM.Model != "" {
		cfg.LLM.Model = fc.LLM.Model
	}
	if fc.LLM.TimeoutMs != nil {
		cfg.LLM.TimeoutMs = *fc.LLM.TimeoutMs
	}
	if fc.LLM.MaxRetries != nil {
		cfg.LLM.MaxRetries = *fc.LLM.MaxRetries
	}
	if fc.LLM.RetryBackoffMs != nil {
		cfg.LLM.RetryBackoffMs = *fc.LLM.RetryBackoffMs
	}
	if fc.LLM.LogCalls != nil {
		cfg.LLM.LogCalls = *fc.LLM.LogCalls
	}
	if fc.Log.Level != "" {
		cfg.LogLevel = fc.Log.Level
	}
	if fc.Audit.Path != "" {
		cfg.Audit.Path = fc.Audit.Path
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	u, err := url.Parse(c.LLM.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("llm endpoint %q must be an absolute http(s) URL", c.LLM.Endpoint)
	}
	if c.LLM.Model == "" {
		return errors.New("llm model must not be empty")
	}
	if c.LLM.TimeoutMs < 0 {
		return fmt.Errorf("llm timeout_ms must be >= 0, got %d", c.LLM.TimeoutMs)
	}
	if c.LLM.MaxRetries < 0 {
		return fmt.Errorf("llm max_retries must be >= 0, got %d", c.LLM.MaxRetries)
	}
	if c.LLM.RetryBackoffMs < 0 {
		return fmt.Errorf("llm retry_backoff_ms must be >= 0, got %d", c.LLM.RetryBackoffMs)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level %q must be one of debug, info, warn, error", c.LogLevel)
	}
	return nil
}
