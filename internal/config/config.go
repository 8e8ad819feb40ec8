// Package config loads and saves the extractor configuration as TOML under
// the user's home directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// Cache configuration
	Cache CacheConfig `toml:"cache"`

	// Extraction configuration
	Extract ExtractConfig `toml:"extract"`

	// Application configuration
	App AppConfig `toml:"app"`
}

// CacheConfig contains download cache settings.
type CacheConfig struct {
	Dir            string `toml:"dir"`             // Cache root directory ("" = <config dir>/cache)
	RequestTimeout string `toml:"request_timeout"` // Per-request timeout (e.g., "30s")
}

// ExtractConfig contains extraction pipeline settings.
type ExtractConfig struct {
	Divisions []string `toml:"divisions"` // Divisions to extract
	Workers   int      `toml:"workers"`   // Concurrent tournament downloads (0 = CPU count)
	Output    string   `toml:"output"`    // Output JSON path
	Limit     int      `toml:"limit"`     // Max tournaments to process (0 = all)
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool `toml:"debug_mode"` // Enable debug logging
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Dir:            "",
			RequestTimeout: "30s",
		},
		Extract: ExtractConfig{
			Divisions: []string{"masters"},
			Workers:   0,
			Output:    "tournament_teams.json",
			Limit:     0,
		},
		App: AppConfig{
			DebugMode: false,
		},
	}
}

// configDir returns the extractor's directory under the user's home,
// creating it if needed.
func configDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	dir := filepath.Join(homeDir, ".team-extractor")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return dir, nil
}

func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads the configuration from disk. Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &config, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.Cache.RequestTimeout); err != nil {
		return fmt.Errorf("invalid request timeout %q: %w", c.Cache.RequestTimeout, err)
	}

	if c.Extract.Workers < 0 {
		return fmt.Errorf("workers cannot be negative: %d", c.Extract.Workers)
	}

	if c.Extract.Limit < 0 {
		return fmt.Errorf("limit cannot be negative: %d", c.Extract.Limit)
	}

	if len(c.Extract.Divisions) == 0 {
		return fmt.Errorf("at least one division is required")
	}

	return nil
}

// CacheDir returns the effective cache directory, defaulting to a cache
// subdirectory next to the config file.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cache"), nil
}

// GetRequestTimeout returns the request timeout as a duration.
func (c *Config) GetRequestTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Cache.RequestTimeout)
}
