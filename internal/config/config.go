// Package config provides configuration loading and validation for the CLI
// and server. Values come from an optional JSON file, overridable by
// environment variables and CLI flags.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all tunable settings. Every field is optional; zero values
// fall back to defaults.
type Config struct {
	// Server
	Port      int    `json:"port,omitempty"`
	OutputDir string `json:"output_dir,omitempty"`

	// External services
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL; empty disables persistence

	// Behavior
	RateLimitPerMinute int  `json:"rate_limit_per_minute,omitempty"`
	DisableCompile     bool `json:"disable_compile,omitempty"` // skip pdflatex even when installed
	Verbose            bool `json:"verbose,omitempty"`
}

// Defaults returns the stock configuration.
func Defaults() *Config {
	return &Config{
		Port:               8000,
		OutputDir:          "output",
		RateLimitPerMinute: 10,
	}
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
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

// Validate checks numeric ranges.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("config error: 'rate_limit_per_minute' must be non-negative")
	}
	return nil
}

// MergeWithDefaults fills unset fields from Defaults and the environment.
// GEMINI_API_KEY and DATABASE_URL are honored when the config leaves them
// empty.
func (c *Config) MergeWithDefaults() *Config {
	out := *c
	def := Defaults()

	if out.Port == 0 {
		out.Port = def.Port
	}
	if out.OutputDir == "" {
		out.OutputDir = def.OutputDir
	}
	if out.RateLimitPerMinute == 0 {
		out.RateLimitPerMinute = def.RateLimitPerMinute
	}
	if out.APIKey == "" {
		out.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if out.DatabaseURL == "" {
		out.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	return &out
}
