// Package config loads the engine configuration.
//
// Settings come from an optional YAML or TOML file and ORIXDB_* environment
// variables, in that order of precedence reversed: environment wins.
//
//	logging:
//	  level: INFO          # DEBUG, INFO, WARN, ERROR
//	  format: text         # text or json
//	store:
//	  directory: /srv/orixdb/main
//	io:
//	  read_limit_bytes_per_sec: 0
//	  max_concurrent_loads: 2
//	prompt:
//	  assume_yes: false
//
// Store-level settings live in each store's manifest, not here.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the engine configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Store   StoreConfig   `mapstructure:"store"`
	IO      IOConfig      `mapstructure:"io"`
	Prompt  PromptConfig  `mapstructure:"prompt"`
}

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR"`
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}

// StoreConfig selects the store used when no folder argument is given.
type StoreConfig struct {
	Directory string `mapstructure:"directory"`
}

// IOConfig bounds index loading.
type IOConfig struct {
	ReadLimitBytesPerSec int64 `mapstructure:"read_limit_bytes_per_sec" validate:"gte=0"`
	MaxConcurrentLoads   int64 `mapstructure:"max_concurrent_loads" validate:"gte=0,lte=16"`
}

// PromptConfig controls interactive confirmations.
type PromptConfig struct {
	AssumeYes bool `mapstructure:"assume_yes"`
}

// keys are bound to environment variables even when no config file
// mentions them.
var keys = []string{
	"logging.level",
	"logging.format",
	"store.directory",
	"io.read_limit_bytes_per_sec",
	"io.max_concurrent_loads",
	"prompt.assume_yes",
}

// Load reads the configuration from configPath (or the default location when
// empty), applies environment overrides and defaults, and validates the
// result.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if err := setupViper(v, configPath); err != nil {
		return nil, err
	}

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func setupViper(v *viper.Viper, configPath string) error {
	// Example: ORIXDB_LOGGING_LEVEL=DEBUG
	v.SetEnvPrefix("ORIXDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		return nil
	}

	// $XDG_CONFIG_HOME/orixdb/config.{yaml,toml}
	v.AddConfigPath(GetConfigDir())
	v.SetConfigName("config")
	return nil
}

func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// GetConfigDir returns $XDG_CONFIG_HOME/orixdb, falling back to
// ~/.config/orixdb and finally the current directory.
func GetConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "orixdb")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "orixdb")
}

// SlogLevel returns the configured level for log/slog.
func (c LoggingConfig) SlogLevel() slog.Level {
	switch strings.ToUpper(c.Level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
