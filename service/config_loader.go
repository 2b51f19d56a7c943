package service

import (
	"github.com/atena-tools/atena/internal/config"
)

// ConfigurationLoaderImpl resolves configuration from files, the
// environment, and CLI flag overrides
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path.
// An empty path discovers a config file or falls back to defaults.
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*config.Config, error) {
	return config.LoadConfig(path)
}

// LoadDefaultConfig loads the discovered configuration. No config file
// falls back to the hardcoded defaults; a discovered file that fails to
// load or validate is an error, so a broken threshold never degrades
// silently to the defaults.
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() (*config.Config, error) {
	path := config.FindConfigFile()
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(path)
}

// ThresholdOverrides carries CLI flag values; zero means "not set"
type ThresholdOverrides struct {
	MaxFunctionLength int
	MaxComplexity     int
	MaxParams         int
	MaxLineLength     int
	MaxClassMethods   int
}

// MergeConfig applies flag overrides on top of the loaded configuration.
// Flags win over file values; unset flags leave the file values alone.
func (c *ConfigurationLoaderImpl) MergeConfig(cfg *config.Config, overrides ThresholdOverrides) *config.Config {
	merged := *cfg
	if overrides.MaxFunctionLength > 0 {
		merged.Thresholds.MaxFunctionLength = overrides.MaxFunctionLength
	}
	if overrides.MaxComplexity > 0 {
		merged.Thresholds.MaxComplexity = overrides.MaxComplexity
	}
	if overrides.MaxParams > 0 {
		merged.Thresholds.MaxParams = overrides.MaxParams
	}
	if overrides.MaxLineLength > 0 {
		merged.Thresholds.MaxLineLength = overrides.MaxLineLength
	}
	if overrides.MaxClassMethods > 0 {
		merged.Thresholds.MaxClassMethods = overrides.MaxClassMethods
	}
	return &merged
}
