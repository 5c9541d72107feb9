// Package config loads service configuration from config.yaml with
// environment variable overrides. Secrets (API keys, database password)
// must only come from environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the matching engine.
// Environment variables always override YAML values for fields that
// support both.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:""`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// Oracle provider configuration
	Oracle OracleConfig `yaml:"oracle"`

	// Matching policy configuration
	Matching MatchingConfig `yaml:"matching"`

	// SeedFile is an optional YAML file of opportunities loaded into the
	// catalog at startup (demo/bootstrap data).
	SeedFile string `yaml:"seed_file" env:"SEED_FILE" env-default:""`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"prospera"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"prospera_engine"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// OracleConfig holds configuration for the analysis/scoring oracle provider.
type OracleConfig struct {
	// Provider selects the oracle backend: openai, grok, perplexity, or
	// anthropic. The first three all speak the OpenAI-compatible chat
	// completions protocol and differ only in base URL and model.
	Provider string `yaml:"provider" env:"ORACLE_PROVIDER" env-default:"openai"`

	// BaseURL overrides the provider's default endpoint (e.g. a local
	// OpenAI-compatible server). Optional.
	BaseURL string `yaml:"base_url" env:"ORACLE_BASE_URL" env-default:""`

	Model  string `yaml:"model" env:"ORACLE_MODEL" env-default:"gpt-4o"`
	APIKey string `yaml:"-" env:"ORACLE_API_KEY"` // Secret - not in YAML

	// TimeoutSeconds is the per-call deadline for a single oracle request.
	TimeoutSeconds int `yaml:"timeout_seconds" env:"ORACLE_TIMEOUT_SECONDS" env-default:"45"`
}

// MatchingConfig holds tunable policy constants for the matching pipeline.
type MatchingConfig struct {
	// MinScore is the minimum relevance score a match must reach to
	// survive threshold filtering.
	MinScore float64 `yaml:"min_score" env:"MATCHING_MIN_SCORE" env-default:"0.6"`

	// MaxConcurrentScoring bounds parallel scoring oracle calls.
	MaxConcurrentScoring int `yaml:"max_concurrent_scoring" env:"MATCHING_MAX_CONCURRENT" env-default:"8"`

	// ContentPreviewRunes caps the opportunity content excerpt included
	// in scoring prompts.
	ContentPreviewRunes int `yaml:"content_preview_runes" env:"MATCHING_CONTENT_PREVIEW_RUNES" env-default:"500"`

	// AnalysisTemperature and ScoringTemperature control oracle sampling.
	AnalysisTemperature float64 `yaml:"analysis_temperature" env:"MATCHING_ANALYSIS_TEMPERATURE" env-default:"0.3"`
	ScoringTemperature  float64 `yaml:"scoring_temperature" env:"MATCHING_SCORING_TEMPERATURE" env-default:"0.2"`
}

// Load reads configuration from the given YAML file with environment
// variable overrides. If the file does not exist, configuration comes from
// environment variables and defaults alone. The version parameter is
// injected at build time and set on the returned Config.
func Load(path, version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Oracle.Provider {
	case "openai", "grok", "perplexity", "anthropic":
	default:
		return fmt.Errorf("unknown oracle provider %q", c.Oracle.Provider)
	}

	if c.Matching.MinScore < 0 || c.Matching.MinScore > 1 {
		return fmt.Errorf("matching.min_score must be in [0,1], got %v", c.Matching.MinScore)
	}

	if c.Matching.MaxConcurrentScoring < 1 {
		return fmt.Errorf("matching.max_concurrent_scoring must be at least 1")
	}

	if c.Matching.ContentPreviewRunes < 0 {
		return fmt.Errorf("matching.content_preview_runes must not be negative")
	}

	if c.Oracle.TimeoutSeconds < 1 {
		return fmt.Errorf("oracle.timeout_seconds must be at least 1")
	}

	return nil
}
