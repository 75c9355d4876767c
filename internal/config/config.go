// Package config loads kpuzzle settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds settings that command-line flags may override.
type Config struct {
	DBPath      string   `env:"KPUZZLE_DB"`
	Definitions []string `env:"KPUZZLE_DEFINITIONS" envSeparator:":"`
	LogLevel    string   `env:"KPUZZLE_LOG_LEVEL" envDefault:"warn"`
}

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Level converts LogLevel to a slog level.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
