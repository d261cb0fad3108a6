// Package config loads corydiff's YAML configuration file and applies environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Environment variables that override the file.
const (
	EnvColor   = "CORYDIFF_COLOR"
	EnvLogFile = "CORYDIFF_LOG_FILE"
)

// DefaultColumnWidth is the side-by-side column width used when the file does not set one.
const DefaultColumnWidth = 80

// ErrInvalid is wrapped by every error Validate returns.
var ErrInvalid = errors.New("invalid config")

// Config holds corydiff's settings.
type Config struct {
	Color       string `yaml:"color"`        // auto, always, never
	SideBySide  bool   `yaml:"side_by_side"` // Default layout for `show`.
	ColumnWidth int    `yaml:"column_width"`
	LogFile     string `yaml:"log_file"`

	Path string `yaml:"-"` // File the config was loaded from; empty if defaults were used.
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Color:       ColorAuto,
		ColumnWidth: DefaultColumnWidth,
	}
}

// DefaultPath returns ~/.config/corydiff/config.yaml, or "" if the home directory is unknown.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "corydiff", "config.yaml")
}

// Load reads the file at path (DefaultPath if path is empty) over the defaults, then applies environment overrides. A missing file is not an error. The result is
// validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	path = expandPath(path)

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
			cfg.Path = path
		case os.IsNotExist(err) && !explicit:
			// Defaults.
		default:
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if v := os.Getenv(EnvColor); v != "" {
		cfg.Color = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	cfg.Color = strings.ToLower(strings.TrimSpace(cfg.Color))
	cfg.LogFile = expandPath(cfg.LogFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every field has an allowed value.
func (c *Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: color must be auto, always or never, got %q", ErrInvalid, c.Color)
	}
	if c.ColumnWidth < 10 {
		return fmt.Errorf("%w: column_width must be at least 10, got %d", ErrInvalid, c.ColumnWidth)
	}
	return nil
}

// expandPath expands a leading ~ to the home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
