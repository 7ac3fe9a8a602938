// Package config loads process configuration (API credential, cache
// location, logging) from a .env file, an optional YAML config file, and
// environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables recognized by Load.
const (
	EnvAPIKey   = "AUTO_DEV_API_KEY"
	EnvBaseURL  = "UNLEADED_BASE_URL"
	EnvCacheDir = "UNLEADED_CACHE_DIR"
	EnvLogFile  = "UNLEADED_LOG_FILE"
	EnvLogLevel = "UNLEADED_LOG_LEVEL"
)

// DefaultCacheDir is where listing snapshots and raw-page dumps live unless
// overridden.
const DefaultCacheDir = "./cache"

// ErrMissingAPIKey is returned when no API credential is configured. Fatal
// at startup, before any fetch begins.
var ErrMissingAPIKey = errors.New("AUTO_DEV_API_KEY is not set (get a key at https://auto.dev)")

// Config holds the resolved process configuration.
type Config struct {
	APIKey   string `yaml:"-"`
	BaseURL  string `yaml:"base_url"`
	CacheDir string `yaml:"cache_dir"`
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
}

// Load resolves configuration from, lowest precedence first: built-in
// defaults, ~/.unleaded/config.yaml (if present), a .env file in the working
// directory (if present), and process environment variables. The API key is
// not validated here; call Validate before fetching.
func Load() (Config, error) {
	cfg := Config{
		CacheDir: DefaultCacheDir,
		LogLevel: "info",
	}

	if err := cfg.applyFile(configFilePath()); err != nil {
		return Config{}, err
	}

	// .env populates the environment without clobbering real env vars.
	_ = godotenv.Load()

	cfg.applyEnv()
	return cfg, nil
}

// Validate checks that the configuration is usable for fetching.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// RawDir is the directory receiving raw page dumps, under the cache
// directory.
func (c Config) RawDir() string {
	return filepath.Join(c.CacheDir, "raw")
}

func (c *Config) applyFile(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvCacheDir); v != "" {
		c.CacheDir = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

func configFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".unleaded", "config.yaml")
}
