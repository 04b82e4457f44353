// Package config provides configuration management for the gradebook.
//
// Config file locations (priority order):
//  1. $GRADEBOOK_CONFIG
//  2. ./gradebook.yaml
//  3. $XDG_CONFIG_HOME/gradebook/config.yaml
//  4. ~/.config/gradebook/config.yaml
//  5. /etc/gradebook/config.yaml
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Backend identifies a storage backend
type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
)

// Config is the top-level configuration schema
type Config struct {
	Version int           `yaml:"version"`
	Storage StorageConfig `yaml:"storage"`
	Grades  GradesConfig  `yaml:"grades"`
	Output  OutputConfig  `yaml:"output"`
}

// StorageConfig selects the persistence backend and its file path
type StorageConfig struct {
	Backend Backend `yaml:"backend"`
	Path    string  `yaml:"path"`
}

// GradesConfig controls score validation on add/update/import
type GradesConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
	// Validate may be set to false to accept scores outside [Min, Max]
	Validate *bool `yaml:"validate"`
}

// ValidateScores reports whether score range validation is enabled
func (g GradesConfig) ValidateScores() bool {
	return g.Validate == nil || *g.Validate
}

// OutputConfig controls presentation defaults
type OutputConfig struct {
	// Color is one of auto, always, never
	Color string `yaml:"color"`
	// DefaultSort is the sort key listings use when none is given
	DefaultSort string `yaml:"default_sort"`
}

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{Version: 1}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendJSON
	}
	if c.Storage.Path == "" {
		switch c.Storage.Backend {
		case BackendSQLite:
			c.Storage.Path = "./grades.db"
		default:
			c.Storage.Path = "./grades.json"
		}
	}
	if c.Grades.Min == 0 && c.Grades.Max == 0 {
		c.Grades.Max = 100
	}
	if c.Output.Color == "" {
		c.Output.Color = "auto"
	}
	if c.Output.DefaultSort == "" {
		c.Output.DefaultSort = "name"
	}
}

// Validate checks the configuration for contradictions
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if c.Grades.Min >= c.Grades.Max {
		return fmt.Errorf("grades.min (%v) must be below grades.max (%v)", c.Grades.Min, c.Grades.Max)
	}

	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("output.color must be auto, always, or never, got %q", c.Output.Color)
	}

	return nil
}

// CheckScore validates a score against the configured range
func (c *Config) CheckScore(score float64) error {
	if !c.Grades.ValidateScores() {
		return nil
	}
	if score < c.Grades.Min || score > c.Grades.Max {
		return fmt.Errorf("score %v outside allowed range [%v, %v]", score, c.Grades.Min, c.Grades.Max)
	}
	return nil
}
