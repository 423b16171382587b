// Package config handles configuration for uia-runner.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/autolab-dev/uia-runner/pkg/core"
)

// Default settings.
const (
	DefaultBridgeURL   = "http://127.0.0.1:8910"
	DefaultWaitTimeout = 10 * time.Second
)

// Config represents the workspace configuration (config.yaml).
type Config struct {
	// Bridge settings
	BridgeURL string `yaml:"bridgeUrl"` // Automation bridge base URL

	// Pacing and timing
	PacingMs      int `yaml:"pacingMs"`      // Fixed delay before every resolution
	WaitTimeoutMs int `yaml:"waitTimeoutMs"` // WaitFor polling timeout

	// Logging
	LogPath string `yaml:"logPath"` // Log file path

	// Locator repository file for @name references
	Repository string `yaml:"repository"`
}

// Default returns a config with default settings.
func Default() *Config {
	return &Config{
		BridgeURL: DefaultBridgeURL,
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, core.ErrInvalidConfig.WithCause(err)
	}
	if cfg.PacingMs < 0 {
		return nil, core.ErrInvalidConfig.WithMessage("pacingMs must not be negative")
	}
	if cfg.WaitTimeoutMs < 0 {
		return nil, core.ErrInvalidConfig.WithMessage("waitTimeoutMs must not be negative")
	}

	return cfg, nil
}

// LoadFromDir looks for config.yaml or config.yml in the directory.
func LoadFromDir(dir string) (*Config, error) {
	// Try config.yaml first
	configPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	// Try config.yml
	configPath = filepath.Join(dir, "config.yml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	// No config file found, return defaults
	return Default(), nil
}

// Pacing returns the resolution pacing delay.
func (c *Config) Pacing() time.Duration {
	return time.Duration(c.PacingMs) * time.Millisecond
}

// WaitTimeout returns the WaitFor polling timeout.
func (c *Config) WaitTimeout() time.Duration {
	if c.WaitTimeoutMs <= 0 {
		return DefaultWaitTimeout
	}
	return time.Duration(c.WaitTimeoutMs) * time.Millisecond
}
