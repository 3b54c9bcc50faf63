// Package config loads and validates the filesystem's configuration:
// arena sizing plus the ambient logging and metrics settings, the same
// three-tier precedence (environment, file, defaults) as the teacher's own
// configuration package.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config is the top-level filesystem configuration.
//
// Configuration sources, in order of precedence:
//  1. Environment variables (MEMFS_*)
//  2. Configuration file (YAML)
//  3. Default values (lowest priority)
type Config struct {
	// NumBlocks is the number of fixed-size blocks the arena is carved
	// into at startup, fixed for the life of the instance.
	NumBlocks int `mapstructure:"num_blocks" yaml:"num_blocks" validate:"required,gt=0"`

	// BlockSize is the size in bytes of each block. The source treats
	// this as a compile-time constant (default 512); here it is a
	// validated construction-time parameter.
	BlockSize int `mapstructure:"block_size" yaml:"block_size" validate:"required,gt=0"`

	// Logging controls log output behavior.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Metrics controls Prometheus metrics collection.
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output.
	Level string `mapstructure:"level" yaml:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`

	// Format specifies the log output format: text or json.
	Format string `mapstructure:"format" yaml:"format" validate:"required,oneof=text json"`

	// Output specifies where logs are written: stdout, stderr, or a file path.
	Output string `mapstructure:"output" yaml:"output" validate:"required"`
}

// MetricsConfig controls Prometheus metrics collection.
type MetricsConfig struct {
	// Enabled opts into metrics collection. Default: false.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// Defaults returns the configuration matching the source's compile-time
// defaults: 512-byte blocks and the modest arena size used by its own
// demonstration driver.
func Defaults() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// Load reads configuration from an optional YAML file and from MEMFS_*
// environment variables, applies defaults for anything left unset, and
// validates the result.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	if _, err := readConfigFile(v); err != nil {
		return nil, err
	}

	// Bind every key to its MEMFS_* variable so environment values are
	// picked up even when no config file supplies the key.
	for _, key := range []string{"num_blocks", "block_size", "logging.level", "logging.format", "logging.output", "metrics.enabled"} {
		_ = v.BindEnv(key)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.StringToTimeDurationHookFunc())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	return validator.New().Struct(cfg)
}

func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("MEMFS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("memfs")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
}

func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}
	return true, nil
}
