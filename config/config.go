package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the complete service configuration.
type Config struct {
	Exchange ExchangeConfig `json:"exchange" yaml:"exchange"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Log      LogConfig      `json:"log" yaml:"log"`
}

// ExchangeConfig selects the Bitunix REST host. BaseURL is only
// overridden in tests and staging setups.
type ExchangeConfig struct {
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// JournalConfig locates the SQLite journal database.
type JournalConfig struct {
	DBPath string `json:"db_path" yaml:"db_path"`
}

// LogConfig controls logging level and optional file rotation.
type LogConfig struct {
	Level      string `json:"level,omitempty" yaml:"level,omitempty"`
	File       string `json:"file,omitempty" yaml:"file,omitempty"`
	MaxSizeMB  int    `json:"max_size_mb,omitempty" yaml:"max_size_mb,omitempty"`
	MaxBackups int    `json:"max_backups,omitempty" yaml:"max_backups,omitempty"`
	MaxAgeDays int    `json:"max_age_days,omitempty" yaml:"max_age_days,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON), applies
// environment overrides, and validates the result.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides file values from the environment. Recognized:
// BITJOURNAL_DB, BITJOURNAL_LOG_LEVEL, BITUNIX_BASE_URL.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("BITJOURNAL_DB")); v != "" {
		c.Journal.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("BITJOURNAL_LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("BITUNIX_BASE_URL")); v != "" {
		c.Exchange.BaseURL = v
	}
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path is required")
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Journal: JournalConfig{
			DBPath: "./trading_journal.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
