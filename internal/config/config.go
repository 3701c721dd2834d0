// Package config loads the TOML configuration file with environment
// variable and tilde expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DefaultPath is where the config file lives unless overridden.
const DefaultPath = "~/.config/mensa/config.toml"

const (
	defaultFactLanguage = "de"
	defaultMetricsPath  = "~/.local/share/mensa/metrics.db"
)

// Config is the application configuration.
type Config struct {
	Locations LocationsConfig `toml:"locations"`
	Facts     FactsConfig     `toml:"facts"`
	Metrics   MetricsConfig   `toml:"metrics"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Locations.Validate(); err != nil {
		return err
	}
	return c.Facts.Validate()
}

// LocationsConfig holds the default canteen ids used when neither an
// id nor a location selector is given.
type LocationsConfig struct {
	Canteens []int `toml:"canteens"`
}

// Validate validates the locations configuration.
func (c *LocationsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Canteens, validation.Required, validation.Each(validation.Min(1))),
	)
}

// FactsConfig holds the locale used for useless-fact lookups.
type FactsConfig struct {
	Language string `toml:"language"`
}

// Validate validates the facts configuration.
func (c *FactsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Language, validation.Required, validation.Length(2, 5)),
	)
}

// MetricsConfig holds the SQLite path for the bot's command metrics.
type MetricsConfig struct {
	Path string `toml:"path"`
}

// Load reads, expands, parses and validates the TOML config at path.
func Load(path string) (*Config, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", expanded, err)
	}

	cfg := &Config{
		Facts:   FactsConfig{Language: defaultFactLanguage},
		Metrics: MetricsConfig{Path: defaultMetricsPath},
	}
	if err := toml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", expanded, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
