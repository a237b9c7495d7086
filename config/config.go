// Package config loads jsonmap adapter settings from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/reoring/jsonmap"
)

// Config represents the complete configuration of a jsonmap Adapter
type Config struct {
	Date      DateConfig      `yaml:"date"`
	Data      string          `yaml:"data"`
	Keys      string          `yaml:"keys"`
	Missing   string          `yaml:"missing"`
	NonFinite NonFiniteConfig `yaml:"non_finite"`
	Limits    LimitsConfig    `yaml:"limits"`
	Driver    string          `yaml:"driver"`
	Comments  bool            `yaml:"comments"`
	Dev       DevConfig       `yaml:"dev"`
}

// DateConfig selects the date strategy. Formatter names a DateFormatter in
// the registry handed to Options; Layout builds a LayoutFormatter inline.
type DateConfig struct {
	Strategy  string `yaml:"strategy"`
	Formatter string `yaml:"formatter,omitempty"`
	Layout    string `yaml:"layout,omitempty"`
	Location  string `yaml:"location,omitempty"`
}

// NonFiniteConfig controls string spellings of infinities and NaN
type NonFiniteConfig struct {
	Strategy         string `yaml:"strategy"`
	PositiveInfinity string `yaml:"positive_infinity"`
	NegativeInfinity string `yaml:"negative_infinity"`
	NaN              string `yaml:"nan"`
}

// LimitsConfig bounds tree building
type LimitsConfig struct {
	MaxDepth      int    `yaml:"max_depth"`
	MaxBytes      int64  `yaml:"max_bytes"`
	DuplicateKeys string `yaml:"duplicate_keys"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Date:    DateConfig{Strategy: "iso8601"},
		Data:    "base64",
		Keys:    "default",
		Missing: "throw",
		NonFinite: NonFiniteConfig{
			Strategy: "throw",
		},
		Limits: LimitsConfig{
			MaxDepth:      jsonmap.DefaultMaxDepth,
			DuplicateKeys: "ignore",
		},
		Driver: "go-json",
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// FindConfigFile searches for a config file in the current directory and its
// parents.
func FindConfigFile() string {
	configNames := []string{".jsonmap.yml", ".jsonmap.yaml", "jsonmap.yml", "jsonmap.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}
	return ""
}

// Options converts c into Adapter options. reg resolves named date
// formatters and may be nil when none are used.
func (c *Config) Options(reg *jsonmap.FormatterRegistry) ([]jsonmap.Option, error) {
	ds, err := c.Date.strategy(reg)
	if err != nil {
		return nil, err
	}
	if c.Data != "" && c.Data != "base64" {
		return nil, fmt.Errorf("unknown data strategy %q", c.Data)
	}
	ks, err := ParseKeyStrategy(c.Keys)
	if err != nil {
		return nil, err
	}
	ms, err := ParseMissingStrategy(c.Missing)
	if err != nil {
		return nil, err
	}
	nf, err := c.NonFinite.strategy()
	if err != nil {
		return nil, err
	}
	dup, err := ParseSeverity(c.Limits.DuplicateKeys)
	if err != nil {
		return nil, err
	}
	drv, err := ParseDriver(c.Driver)
	if err != nil {
		return nil, err
	}

	opts := []jsonmap.Option{
		jsonmap.WithDateStrategy(ds),
		jsonmap.WithDataStrategy(jsonmap.DataBase64),
		jsonmap.WithKeyStrategy(ks),
		jsonmap.WithMissingValueStrategy(ms),
		jsonmap.WithNonFiniteStrategy(nf),
		jsonmap.WithLimits(jsonmap.Limits{
			MaxDepth:      c.Limits.MaxDepth,
			MaxBytes:      c.Limits.MaxBytes,
			DuplicateKeys: dup,
		}),
		jsonmap.WithDriver(drv),
	}
	if c.Comments {
		opts = append(opts, jsonmap.WithComments())
	}
	return opts, nil
}

func (d DateConfig) strategy(reg *jsonmap.FormatterRegistry) (jsonmap.DateStrategy, error) {
	switch d.Strategy {
	case "", "iso8601":
		return jsonmap.DateISO8601, nil
	case "seconds_since_1970":
		return jsonmap.DateSecondsSince1970, nil
	case "milliseconds_since_1970":
		return jsonmap.DateMillisecondsSince1970, nil
	case "formatted":
		if d.Formatter != "" {
			ds, err := reg.DateStrategy(d.Formatter)
			if err != nil {
				return jsonmap.DateStrategy{}, fmt.Errorf("date formatter: %w", err)
			}
			return ds, nil
		}
		if d.Layout == "" {
			return jsonmap.DateStrategy{}, fmt.Errorf("formatted date strategy needs a formatter or a layout")
		}
		f := jsonmap.LayoutFormatter{Layout: d.Layout}
		if d.Location != "" {
			loc, err := time.LoadLocation(d.Location)
			if err != nil {
				return jsonmap.DateStrategy{}, fmt.Errorf("invalid date location %q: %w", d.Location, err)
			}
			f.Location = loc
		}
		return jsonmap.DateFormatted(f), nil
	}
	return jsonmap.DateStrategy{}, fmt.Errorf("unknown date strategy %q", d.Strategy)
}

func (n NonFiniteConfig) strategy() (jsonmap.NonFiniteStrategy, error) {
	switch n.Strategy {
	case "", "throw":
		return jsonmap.NonFiniteThrow, nil
	case "from_string":
		if n.PositiveInfinity == "" || n.NegativeInfinity == "" || n.NaN == "" {
			return jsonmap.NonFiniteStrategy{}, fmt.Errorf("from_string needs positive_infinity, negative_infinity and nan")
		}
		return jsonmap.NonFiniteFromString(n.PositiveInfinity, n.NegativeInfinity, n.NaN), nil
	}
	return jsonmap.NonFiniteStrategy{}, fmt.Errorf("unknown non-finite strategy %q", n.Strategy)
}

// ParseKeyStrategy maps "default" or "snake_case" to a KeyStrategy.
func ParseKeyStrategy(s string) (jsonmap.KeyStrategy, error) {
	switch s {
	case "", "default":
		return jsonmap.KeysDefault, nil
	case "snake_case":
		return jsonmap.KeysSnakeCase, nil
	}
	return 0, fmt.Errorf("unknown key strategy %q", s)
}

// ParseMissingStrategy maps "throw" or "use_defaults".
func ParseMissingStrategy(s string) (jsonmap.MissingValueStrategy, error) {
	switch s {
	case "", "throw":
		return jsonmap.MissingThrow, nil
	case "use_defaults":
		return jsonmap.MissingUseDefaults, nil
	}
	return 0, fmt.Errorf("unknown missing-value strategy %q", s)
}

// ParseSeverity maps "ignore", "warn" or "error".
func ParseSeverity(s string) (jsonmap.Severity, error) {
	switch s {
	case "", "ignore":
		return jsonmap.Ignore, nil
	case "warn":
		return jsonmap.Warn, nil
	case "error":
		return jsonmap.Error, nil
	}
	return 0, fmt.Errorf("unknown severity %q", s)
}

// ParseDriver maps "go-json" or "encoding/json".
func ParseDriver(s string) (jsonmap.Driver, error) {
	switch s {
	case "", jsonmap.DriverGoJSON.String():
		return jsonmap.DriverGoJSON, nil
	case jsonmap.DriverStdlib.String():
		return jsonmap.DriverStdlib, nil
	}
	return 0, fmt.Errorf("unknown driver %q", s)
}
