// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Profile    string `json:"profile,omitempty"`     // Path to student profile JSON file
	MarketData string `json:"market_data,omitempty"` // Path to a custom job market dataset
	Resources  string `json:"resources,omitempty"`   // Path to a custom learning resource library
	Output     string `json:"output,omitempty"`      // Path to write assessment results to

	// Assessment
	DesiredRole     string `json:"desired_role,omitempty"`     // Target role to assess
	DurationWeeks   int    `json:"duration_weeks,omitempty"`   // Roadmap planning horizon
	TopAlternatives int    `json:"top_alternatives,omitempty"` // How many alternative roles to recommend

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	ListenAddr  string `json:"listen_addr,omitempty"`  // HTTP server listen address
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.DurationWeeks < 0 {
		return fmt.Errorf("config error: 'duration_weeks' must be non-negative")
	}
	if c.TopAlternatives < 0 {
		return fmt.Errorf("config error: 'top_alternatives' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.Profile != "" {
		if _, err := os.Stat(c.Profile); os.IsNotExist(err) {
			return fmt.Errorf("config error: profile file not found: %s", c.Profile)
		}
	}
	if c.MarketData != "" {
		if _, err := os.Stat(c.MarketData); os.IsNotExist(err) {
			return fmt.Errorf("config error: market data file not found: %s", c.MarketData)
		}
	}
	if c.Resources != "" {
		if _, err := os.Stat(c.Resources); os.IsNotExist(err) {
			return fmt.Errorf("config error: resources file not found: %s", c.Resources)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Profile == "" {
		result.Profile = defaults.Profile
	}
	if result.MarketData == "" {
		result.MarketData = defaults.MarketData
	}
	if result.Resources == "" {
		result.Resources = defaults.Resources
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.DesiredRole == "" {
		result.DesiredRole = defaults.DesiredRole
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ListenAddr == "" {
		result.ListenAddr = defaults.ListenAddr
	}

	// Int fields: use default if zero
	if result.DurationWeeks == 0 {
		result.DurationWeeks = defaults.DurationWeeks
	}
	if result.TopAlternatives == 0 {
		if defaults.TopAlternatives > 0 {
			result.TopAlternatives = defaults.TopAlternatives
		} else {
			result.TopAlternatives = 3 // Default to three alternatives
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
