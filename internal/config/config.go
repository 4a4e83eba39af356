package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Data   DataConfig   `yaml:"data"`
	Cache  CacheConfig  `yaml:"cache"`
	Watch  WatchConfig  `yaml:"watch"`
	Report ReportConfig `yaml:"report"`
}

// DataConfig holds dataset source settings
type DataConfig struct {
	Path string `yaml:"path"`
}

// CacheConfig holds dataset cache settings
type CacheConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Path     string `yaml:"path"`
	TTLHours int    `yaml:"ttl_hours"`
}

// WatchConfig holds dataset watch-mode settings
type WatchConfig struct {
	Enabled         bool `yaml:"enabled"`
	DebounceSeconds int  `yaml:"debounce_seconds"`
}

// ReportConfig holds session report output settings
type ReportConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns the configuration used when no config file is given.
// The dataset path still has to come from somewhere (file or -data flag).
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	// Expand ~ to home directory if present
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Validate checks the configuration after flag overrides are applied.
func (c *Config) Validate() error {
	if c.Data.Path == "" {
		return fmt.Errorf("dataset path is required (set data.path or pass -data)")
	}
	if c.Cache.TTLHours <= 0 {
		return fmt.Errorf("cache ttl_hours must be positive, got %d", c.Cache.TTLHours)
	}
	if c.Watch.DebounceSeconds <= 0 {
		return fmt.Errorf("watch debounce_seconds must be positive, got %d", c.Watch.DebounceSeconds)
	}
	return nil
}

// applyDefaults fills unset fields with working values.
func (c *Config) applyDefaults() {
	if c.Cache.Path == "" {
		c.Cache.Path = "./cache/dataset.db"
	}
	if c.Cache.TTLHours == 0 {
		c.Cache.TTLHours = 24
	}
	if c.Watch.DebounceSeconds == 0 {
		c.Watch.DebounceSeconds = 2
	}
	if c.Report.Dir == "" {
		c.Report.Dir = "./reports"
	}
}
