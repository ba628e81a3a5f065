// Package config provides configuration management for the daily-trivia service.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the main application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	AI         AIConfig         `yaml:"ai"`
	Generation GenerationConfig `yaml:"generation"`
	DataRoot   string           `yaml:"data_root"` // Directory holding per-day JSON files
	APIKeys    APIKeysConfig    `yaml:"api_keys"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Address string `yaml:"address"` // Listen address, e.g. ":8080"
}

// AIConfig configures AI model parameters.
type AIConfig struct {
	Model          string   `yaml:"model"`           // Claude model to use
	MaxTokens      int      `yaml:"max_tokens"`      // Maximum tokens for generation
	Temperature    *float64 `yaml:"temperature"`     // Creativity level (0.0-1.0), pointer to distinguish unset from 0
	TimeoutSeconds int      `yaml:"timeout_seconds"` // API timeout in seconds
}

// GenerationConfig configures the batch generation pacing. The delay fields
// are pointers to distinguish unset from an explicit 0, which disables pacing.
type GenerationConfig struct {
	SuccessDelaySeconds *int `yaml:"success_delay_seconds"` // Pause after a generated date
	ErrorDelaySeconds   *int `yaml:"error_delay_seconds"`   // Longer pause after a failed date
}

// APIKeysConfig contains API credentials for external services.
type APIKeysConfig struct {
	Anthropic string `yaml:"anthropic"` // Anthropic API key
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses a configuration file from the specified path.
// An empty path yields the built-in defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	// #nosec G304 -- path is provided by user as configuration file path
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.AI.Model == "" {
		c.AI.Model = "claude-sonnet-4-20250514"
	}
	if c.AI.MaxTokens == 0 {
		c.AI.MaxTokens = 4096
	}
	if c.AI.Temperature == nil {
		defaultTemp := 1.0
		c.AI.Temperature = &defaultTemp
	}
	if c.AI.TimeoutSeconds == 0 {
		c.AI.TimeoutSeconds = 120
	}
	if c.Generation.SuccessDelaySeconds == nil {
		successDelay := 2
		c.Generation.SuccessDelaySeconds = &successDelay
	}
	if c.Generation.ErrorDelaySeconds == nil {
		errorDelay := 5
		c.Generation.ErrorDelaySeconds = &errorDelay
	}
	if c.DataRoot == "" {
		c.DataRoot = "data"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.AI.MaxTokens < 1 || c.AI.MaxTokens > 200000 {
		return fmt.Errorf("ai.max_tokens must be between 1 and 200000, got %d", c.AI.MaxTokens)
	}
	if c.AI.Temperature != nil && (*c.AI.Temperature < 0 || *c.AI.Temperature > 1.0) {
		return fmt.Errorf("ai.temperature must be between 0.0 and 1.0, got %.2f", *c.AI.Temperature)
	}
	if c.AI.TimeoutSeconds < 1 || c.AI.TimeoutSeconds > 600 {
		return fmt.Errorf("ai.timeout_seconds must be between 1 and 600, got %d", c.AI.TimeoutSeconds)
	}
	if c.AI.Model == "" {
		return fmt.Errorf("ai.model cannot be empty")
	}
	if c.Generation.SuccessDelaySeconds != nil && *c.Generation.SuccessDelaySeconds < 0 {
		return fmt.Errorf("generation.success_delay_seconds cannot be negative, got %d", *c.Generation.SuccessDelaySeconds)
	}
	if c.Generation.ErrorDelaySeconds != nil && *c.Generation.ErrorDelaySeconds < 0 {
		return fmt.Errorf("generation.error_delay_seconds cannot be negative, got %d", *c.Generation.ErrorDelaySeconds)
	}
	if c.DataRoot == "" {
		return fmt.Errorf("data_root cannot be empty")
	}
	return nil
}

// GetAnthropicKey returns the Anthropic API key with env var priority.
func (c *Config) GetAnthropicKey() string {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return key
	}
	return c.APIKeys.Anthropic
}
