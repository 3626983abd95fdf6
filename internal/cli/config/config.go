// SPDX-License-Identifier: MIT

// Package config loads the grace command-line settings.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrInvalid is returned for a configuration that loads but cannot be used.
var ErrInvalid = errors.New("config: invalid configuration")

// Config represents the grace configuration.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Geometry GeometryConfig `mapstructure:"geometry"`
	Check    CheckConfig    `mapstructure:"check"`
}

// LogConfig selects the zap logger.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// GeometryConfig tunes the numeric layer.
type GeometryConfig struct {
	Epsilon float64 `mapstructure:"epsilon"`
}

// CheckConfig drives `grace check` and `grace watch`.
type CheckConfig struct {
	FailFast bool `mapstructure:"fail_fast"`
	Color    bool `mapstructure:"color"`
	// Bundled adds the shipped constructions to every run.
	Bundled bool `mapstructure:"bundled"`
}

// Load reads grace.yaml from file, or from the working directory and
// $HOME/.config/grace when file is empty. A missing file is not an error.
// GRACE_-prefixed environment variables override both, e.g.
// GRACE_CHECK_FAIL_FAST=true.
func Load(file string) (*Config, error) {
	v := viper.New()

	// 1. Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("geometry.epsilon", 1e-9)
	v.SetDefault("check.fail_fast", false)
	v.SetDefault("check.color", true)
	v.SetDefault("check.bundled", false)

	// 2. Config file
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("grace")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/grace")
	}

	// 3. Environment
	v.SetEnvPrefix("GRACE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if _, err := c.level(); err != nil {
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	if c.Geometry.Epsilon <= 0 {
		return fmt.Errorf("%w: geometry.epsilon must be positive, got %g", ErrInvalid, c.Geometry.Epsilon)
	}

	return nil
}

// Logger builds the zap logger described by c.Log.
func (c *Config) Logger() (*zap.Logger, error) {
	lvl, err := c.level()
	if err != nil {
		return nil, fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	zc := zap.NewProductionConfig()
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)

	return zc.Build()
}

func (c *Config) level() (zapcore.Level, error) {
	var lvl zapcore.Level
	err := lvl.UnmarshalText([]byte(strings.ToLower(c.Log.Level)))

	return lvl, err
}
