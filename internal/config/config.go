// Package config provides configuration loading and validation.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config holds application configuration. All fields are optional; missing
// values use defaults or come from environment variables.
type Config struct {
	// APIKey is the Gemini API key. When empty, extraction and embeddings
	// run in their deterministic fallback modes.
	APIKey string `json:"api_key,omitempty"`

	// DatabaseURL is the PostgreSQL connection string for the catalog store.
	DatabaseURL string `json:"database_url,omitempty"`

	// Port is the HTTP listen port.
	Port int `json:"port,omitempty" validate:"omitempty,gte=1,lte=65535"`

	// TenderSources are the monitored tender portal URLs.
	TenderSources []string `json:"tender_sources,omitempty" validate:"omitempty,dive,url"`

	// Verbose enables detailed debug logging.
	Verbose bool `json:"verbose,omitempty"`
}

// envOr reads an environment variable with a fallback.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// FromEnv builds a Config from environment variables.
func FromEnv() *Config {
	return &Config{
		APIKey:      envOr("GEMINI_API_KEY", ""),
		DatabaseURL: envOr("DATABASE_URL", ""),
	}
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Bool fields are not merged; flags win for those.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if len(result.TenderSources) == 0 {
		result.TenderSources = defaults.TenderSources
	}

	return result
}
