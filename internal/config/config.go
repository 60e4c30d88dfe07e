// Package config loads allocator settings from defaults, an optional YAML
// config file, STUDY_ALLOCATOR_* environment variables and bound flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"study-time-allocator/internal/logging"
)

// EnvPrefix is the prefix of environment overrides, e.g.
// STUDY_ALLOCATOR_OUTPUT_FORMAT=json.
const EnvPrefix = "STUDY_ALLOCATOR"

// ConfigName is the base name of the config file searched for in the
// working directory and the user config directory.
const ConfigName = ".study-time-allocator"

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// Units of weekly budget values.
const (
	UnitHours   = "hours"
	UnitMinutes = "minutes"
)

// Config is the complete allocator configuration.
type Config struct {
	Output  OutputConfig  `mapstructure:"output"`
	Input   InputConfig   `mapstructure:"input"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// OutputConfig controls how results are presented.
type OutputConfig struct {
	// Format is one of "table", "json" or "csv".
	Format string `mapstructure:"format"`
	// JSONPath, when set, also writes the JSON report to this file.
	JSONPath string `mapstructure:"json_path"`
	// Explain prints each subject's priority breakdown.
	Explain bool `mapstructure:"explain"`
}

// InputConfig controls how weekly budget values are read.
type InputConfig struct {
	// Unit is "hours" or "minutes".
	Unit string `mapstructure:"unit"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	// Dir holds the log file; empty logs to stderr.
	Dir string `mapstructure:"dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format: FormatTable,
		},
		Input: InputConfig{
			Unit: UnitHours,
		},
		Logging: LoggingConfig{
			Level: logging.LevelWarn,
		},
	}
}

// SetDefaults registers default values with v.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.json_path", defaults.Output.JSONPath)
	v.SetDefault("output.explain", defaults.Output.Explain)
	v.SetDefault("input.unit", defaults.Input.Unit)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads configuration into a Config. When cfgFile is empty the config
// file is optional and searched for in the working directory and ConfigDir.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(ConfigDir())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.normalize()

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	c.Input.Unit = strings.ToLower(strings.TrimSpace(c.Input.Unit))
	c.Logging.Level = strings.ToUpper(strings.TrimSpace(c.Logging.Level))
}

// ConfigDir returns the user's config directory for the allocator.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "study-time-allocator")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "study-time-allocator")
}

// ValidFormats returns the accepted output formats.
func ValidFormats() []string {
	return []string{FormatTable, FormatJSON, FormatCSV}
}

// ValidUnits returns the accepted budget units.
func ValidUnits() []string {
	return []string{UnitHours, UnitMinutes}
}

// MinutesPerUnit returns how many minutes one budget unit represents.
func (c *InputConfig) MinutesPerUnit() float64 {
	if c.Unit == UnitMinutes {
		return 1
	}
	return 60
}

// Validate checks c and returns every problem found.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if !slices.Contains(ValidFormats(), c.Output.Format) {
		errs = append(errs, ValidationError{
			Field:   "output.format",
			Value:   c.Output.Format,
			Message: "must be one of " + strings.Join(ValidFormats(), ", "),
		})
	}
	if !slices.Contains(ValidUnits(), c.Input.Unit) {
		errs = append(errs, ValidationError{
			Field:   "input.unit",
			Value:   c.Input.Unit,
			Message: "must be one of " + strings.Join(ValidUnits(), ", "),
		})
	}
	if !logging.IsValidLevel(c.Logging.Level) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: "must be one of " + strings.Join(logging.ValidLevels(), ", "),
		})
	}

	return errs
}

// ValidationError is a single invalid setting.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects every invalid setting found by Validate.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "\n  %d. %s", i+1, err.Error())
	}
	return sb.String()
}
