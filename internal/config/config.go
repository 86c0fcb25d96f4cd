package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Config holds application configuration.
type Config struct {
	FetchTimeout     int    `json:"fetchTimeoutMs"`
	FetchConcurrency int    `json:"fetchConcurrency"`
	Locale           string `json:"locale"`
	CacheEnabled     *bool  `json:"cacheEnabled,omitempty"`
}

// Defaults
const (
	DefaultFetchTimeoutMs   = 30000
	DefaultFetchConcurrency = 4
	DefaultLocale           = "en"
)

// DefaultConfigDir returns the platform-appropriate config directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "prtree")
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, ".config", "prtree")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "prtree")
		}
		return filepath.Join(home, ".config", "prtree")
	default: // linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "prtree")
		}
		return filepath.Join(home, ".config", "prtree")
	}
}

// Load reads the config file, returning defaults for missing fields.
func Load() (*Config, error) {
	return loadFrom(filepath.Join(DefaultConfigDir(), "config.json"))
}

func loadFrom(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	return saveTo(DefaultConfigDir(), cfg)
}

func saveTo(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := filepath.Join(dir, "config.json")
	tmpPath := configPath + ".tmp"

	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := os.Rename(tmpPath, configPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename config: %w", err)
	}

	return nil
}

// TreeCacheDir returns the path to the tree cache directory.
func TreeCacheDir() string {
	return filepath.Join(DefaultConfigDir(), "trees")
}

// FetchTimeoutDuration returns the per-fetch timeout as a time.Duration.
func (c *Config) FetchTimeoutDuration() time.Duration {
	return time.Duration(c.FetchTimeout) * time.Millisecond
}

// CacheOn reports whether trees are cached between sessions.
func (c *Config) CacheOn() bool {
	return c.CacheEnabled == nil || *c.CacheEnabled
}

func defaults() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeoutMs
	}
	if cfg.FetchConcurrency <= 0 {
		cfg.FetchConcurrency = DefaultFetchConcurrency
	}
	if cfg.Locale == "" {
		cfg.Locale = DefaultLocale
	}
}
