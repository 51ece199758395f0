// Package config loads CLI configuration from file, environment and defaults.
package config

import (
	"errors"
	"fmt"
)

// Output format names accepted by the validate step. They mirror pkg/report.
var validFormats = map[string]bool{
	"text":  true,
	"table": true,
	"json":  true,
}

// ErrInvalidFormat is returned for output formats the renderer does not know.
var ErrInvalidFormat = errors.New("invalid output format")

// ErrNegativeDistance is returned for a negative suggestion distance.
var ErrNegativeDistance = errors.New("suggest_max_distance must not be negative")

// Config is the top-level configuration struct for classref.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	ConfigDir string        `mapstructure:"config_dir"`
	Symbols   string        `mapstructure:"symbols"`
	Format    string        `mapstructure:"format"`
	NoColor   bool          `mapstructure:"no_color"`
	Silent    bool          `mapstructure:"silent"`
	Checker   CheckerConfig `mapstructure:"checker"`
}

// CheckerConfig holds the class-reference hook settings.
type CheckerConfig struct {
	ClassElement       string `mapstructure:"class_element"`
	ExcludeFrom        string `mapstructure:"exclude_from"`
	SuggestMaxDistance int    `mapstructure:"suggest_max_distance"`
}

// Validate checks invariants that hold regardless of where a value came from.
func (c *Config) Validate() error {
	if c.Format != "" && !validFormats[c.Format] {
		return fmt.Errorf("%w: %s", ErrInvalidFormat, c.Format)
	}

	if c.Checker.SuggestMaxDistance < 0 {
		return ErrNegativeDistance
	}

	return nil
}
