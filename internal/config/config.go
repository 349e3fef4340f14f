// Package config loads mcplint's YAML configuration file, following the
// same decode-then-default-then-validate shape as the platform this
// module's conventions are adapted from.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration document.
type Config struct {
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// AnalysisConfig controls the orchestrator's overall behavior.
type AnalysisConfig struct {
	// Timeout bounds the whole pipeline. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout"`

	// Strict promotes warnings to errors before verdict reduction.
	Strict bool `yaml:"strict"`

	// Rules is a selector list: plain codes allow, "-"-prefixed codes deny.
	Rules []string `yaml:"rules"`
}

// EmbeddingConfig selects and configures the embedding Provider.
type EmbeddingConfig struct {
	// Provider is "local" (default, offline) or "openai".
	Provider string `yaml:"provider"`

	// OpenAI is only consulted when Provider is "openai".
	OpenAI OpenAIEmbeddingConfig `yaml:"openai"`
}

// OpenAIEmbeddingConfig configures the optional network-backed provider.
type OpenAIEmbeddingConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the optional Prometheus exporter.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Load reads, decodes, defaults, and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(expanded))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("failed to parse config: expected a single document")
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Analysis.Timeout == 0 {
		cfg.Analysis.Timeout = 30 * time.Second
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = "local"
	}
	if cfg.Embedding.OpenAI.Model == "" {
		cfg.Embedding.OpenAI.Model = "text-embedding-3-small"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = ":9090"
	}
}

func validate(cfg *Config) error {
	if cfg.Analysis.Timeout <= 0 {
		return fmt.Errorf("analysis.timeout must be positive, got %s", cfg.Analysis.Timeout)
	}
	switch cfg.Embedding.Provider {
	case "local", "openai":
	default:
		return fmt.Errorf("embedding.provider must be \"local\" or \"openai\", got %q", cfg.Embedding.Provider)
	}
	if cfg.Embedding.Provider == "openai" && cfg.Embedding.OpenAI.APIKey == "" {
		return fmt.Errorf("embedding.openai.api_key is required when embedding.provider is \"openai\"")
	}
	return nil
}

// Default returns a Config with every default applied and nothing loaded
// from disk, for callers (and tests) that don't need a config file.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}
