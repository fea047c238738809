// =============================================================================
// SDE Types Converter - Configuration Module
// =============================================================================
//
// This module loads the converter settings. Every setting has a default that
// reproduces the tool's fixed conventions (./sde.zip in, ./types.json.gz out),
// so running with no configuration at all is the normal case.
//
// PRECEDENCE (highest first):
//   1. Command-line flags (bound by the cmd package)
//   2. Environment variables with the SDECONV_ prefix
//   3. The config file (sdeconv.yaml in the working directory, or --config)
//   4. Defaults()
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ginjaninja78/sde-types-converter/internal/types"
)

// EnvPrefix is the prefix for environment overrides, e.g. SDECONV_INPUT.
const EnvPrefix = "SDECONV"

// ConfigName is the config file base name searched in the working directory.
const ConfigName = "sdeconv"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the converter settings.
type Config struct {
	// Input is the path to the SDE zip archive.
	// Default: "sde.zip"
	Input string `mapstructure:"input"`

	// Entry is the archive entry holding the type catalog.
	// Default: "fsd/types.yaml"
	Entry string `mapstructure:"entry"`

	// Output is the path of the gzip-compressed JSON file. An existing file
	// is replaced.
	// Default: "types.json.gz"
	Output string `mapstructure:"output"`

	// Report is an optional path for an XLSX review workbook of the
	// exported records. Empty disables the report.
	Report string `mapstructure:"report"`

	// SortByID orders the output by id. Without it the output follows the
	// source key order.
	// Default: true
	SortByID bool `mapstructure:"sort_by_id"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `mapstructure:"log_level"`
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() Config {
	return Config{
		Input:    "sde.zip",
		Entry:    types.DefaultEntryName,
		Output:   "types.json.gz",
		SortByID: true,
		LogLevel: "info",
	}
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// NewViper returns a viper instance with defaults, environment binding and
// the optional config file applied.
//
// PARAMETERS:
//   - cfgFile: An explicit config file path. If empty, sdeconv.yaml is
//     looked up in the working directory and silently skipped if absent.
//
// RETURNS:
//   - The viper instance, ready for flag binding and Load.
//   - An error if an explicit config file is missing or any config file is
//     malformed.
func NewViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()

	d := Defaults()
	v.SetDefault("input", d.Input)
	v.SetDefault("entry", d.Entry)
	v.SetDefault("output", d.Output)
	v.SetDefault("report", d.Report)
	v.SetDefault("sort_by_id", d.SortByID)
	v.SetDefault("log_level", d.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return v, nil
}

// Load extracts and validates the configuration from v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills settings that were explicitly set to empty strings.
func applyDefaults(cfg *Config) {
	d := Defaults()
	if cfg.Input == "" {
		cfg.Input = d.Input
	}
	if cfg.Entry == "" {
		cfg.Entry = d.Entry
	}
	if cfg.Output == "" {
		cfg.Output = d.Output
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = d.LogLevel
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}

	if samePath(c.Input, c.Output) {
		return fmt.Errorf("output %q would overwrite the input archive", c.Output)
	}

	if c.Report != "" {
		if !strings.EqualFold(filepath.Ext(c.Report), ".xlsx") {
			return fmt.Errorf("report %q must have an .xlsx extension", c.Report)
		}
		if samePath(c.Report, c.Output) || samePath(c.Report, c.Input) {
			return fmt.Errorf("report %q collides with the input or output path", c.Report)
		}
	}

	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
