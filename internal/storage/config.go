package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds application configuration.
type Config struct {
	Backend            string   `toml:"backend"`
	SearchLimit        int      `toml:"search_limit"`
	DefaultProfile     string   `toml:"default_profile,omitempty"`
	Intranet           bool     `toml:"intranet"`
	CullExcludeDomains []string `toml:"cull_exclude_domains"`
	CullConcurrency    int      `toml:"cull_concurrency"`
	CullTimeoutSeconds int      `toml:"cull_timeout_seconds"`
	LogLevel           string   `toml:"log_level"`
	// DataDir overrides where profiles are stored (default ~/.config/bmdash)
	DataDir string `toml:"data_dir,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Backend:            BackendJSON,
		SearchLimit:        10,
		CullExcludeDomains: []string{"github.com", "gitlab.com"},
		CullConcurrency:    10,
		CullTimeoutSeconds: 10,
		LogLevel:           "info",
	}
}

// LoadConfig reads config from the TOML file.
// Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: return defaults even if save fails
			_ = SaveConfig(path, &config)
			return &config, nil
		}
		return nil, err
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	// Apply defaults for missing fields
	defaults := DefaultConfig()
	if config.Backend == "" {
		config.Backend = defaults.Backend
	}
	if config.SearchLimit == 0 {
		config.SearchLimit = defaults.SearchLimit
	}
	if config.CullExcludeDomains == nil {
		config.CullExcludeDomains = defaults.CullExcludeDomains
	}
	if config.CullConcurrency <= 0 {
		config.CullConcurrency = defaults.CullConcurrency
	}
	if config.CullTimeoutSeconds <= 0 {
		config.CullTimeoutSeconds = defaults.CullTimeoutSeconds
	}
	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}

	return &config, nil
}

// SaveConfig writes config to the TOML file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// CullTimeout returns the per-URL timeout for link checks.
func (c *Config) CullTimeout() time.Duration {
	return time.Duration(c.CullTimeoutSeconds) * time.Second
}

// DefaultConfigFilePath returns the default config path: ~/.config/bmdash/config.toml
func DefaultConfigFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
