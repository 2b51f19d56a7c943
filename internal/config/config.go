package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/atena-tools/atena/domain"
	"github.com/atena-tools/atena/internal/constants"
)

// Config represents the main configuration structure
type Config struct {
	// Thresholds holds the rule limits applied during analysis
	Thresholds domain.Thresholds `json:"thresholds" mapstructure:"thresholds" yaml:"thresholds"`

	// Analysis holds general analysis configuration
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis" yaml:"analysis"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`
}

// AnalysisConfig holds configuration for the tree walk and extraction
type AnalysisConfig struct {
	// Exclude lists gitignore-style patterns skipped during the walk,
	// in addition to the built-in directory denylist
	Exclude []string `json:"exclude,omitempty" mapstructure:"exclude" yaml:"exclude,omitempty"`

	// MaxFileSize bounds how many bytes of one file are read.
	// Larger files are recorded as unreadable and skipped.
	MaxFileSize int64 `json:"max_file_size" mapstructure:"max_file_size" yaml:"max_file_size"`

	// Workers is the number of concurrent extraction workers.
	// 0 selects the number of CPUs.
	Workers int `json:"workers" mapstructure:"workers" yaml:"workers"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml
	Format string `json:"format" mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns a configuration with standard values
func DefaultConfig() *Config {
	return &Config{
		Thresholds: domain.DefaultThresholds(),
		Analysis: AnalysisConfig{
			MaxFileSize: constants.DefaultMaxFileSize,
			Workers:     0,
		},
		Output: OutputConfig{
			Format: constants.OutputFormatText,
		},
	}
}

// Validate checks the configuration, failing fast before any file is
// touched. Threshold violations surface as InvalidThreshold errors.
func (c *Config) Validate() error {
	if err := c.Thresholds.Validate(); err != nil {
		return err
	}
	if c.Analysis.MaxFileSize <= 0 {
		return domain.NewConfigError(fmt.Sprintf("max_file_size must be positive, got %d", c.Analysis.MaxFileSize), nil)
	}
	if c.Analysis.Workers < 0 {
		return domain.NewConfigError(fmt.Sprintf("workers must be non-negative, got %d", c.Analysis.Workers), nil)
	}
	switch c.Output.Format {
	case constants.OutputFormatText, constants.OutputFormatJSON, constants.OutputFormatYAML:
	default:
		return domain.NewConfigError(fmt.Sprintf("unsupported output format: %s", c.Output.Format), nil)
	}
	return nil
}

// configFileNames lists recognized config file names in order of preference
var configFileNames = []string{
	constants.ConfigFileName,
	".atena.yaml",
	".atena.yml",
	".atena.toml",
	"atena.yml",
}

// LoadConfig loads configuration from the specified path. An empty path
// searches the current directory and its parents for a recognized
// config file and falls back to defaults when none exists.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = FindConfigFile()
		if path == "" {
			return DefaultConfig(), nil
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(constants.EnvVarPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("failed to read config file: %s", path), err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("failed to parse config file: %s", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile searches the current directory and its parents for a
// recognized config file, returning "" when none is found
func FindConfigFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	v.SetDefault("thresholds.max_function_length", defaults.Thresholds.MaxFunctionLength)
	v.SetDefault("thresholds.max_complexity", defaults.Thresholds.MaxComplexity)
	v.SetDefault("thresholds.max_params", defaults.Thresholds.MaxParams)
	v.SetDefault("thresholds.max_line_length", defaults.Thresholds.MaxLineLength)
	v.SetDefault("thresholds.max_class_methods", defaults.Thresholds.MaxClassMethods)
	v.SetDefault("analysis.max_file_size", defaults.Analysis.MaxFileSize)
	v.SetDefault("analysis.workers", defaults.Analysis.Workers)
	v.SetDefault("output.format", defaults.Output.Format)
}
