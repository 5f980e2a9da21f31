// Package config loads runtime settings from the environment.
package config

import (
	"fmt"

	"bookban-guard/internal/evict"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-hclog"
)

// Config holds settings shared by the binaries. Flags may override any
// value after Load.
type Config struct {
	Budget       int    `env:"BOOKBAN_BYTE_BUDGET"`
	HTTPAddr     string `env:"BOOKBAN_HTTP_ADDR"`
	LogLevel     string `env:"BOOKBAN_LOG_LEVEL"`
	MaxBodyBytes int64  `env:"BOOKBAN_MAX_BODY_BYTES"`
}

// Load starts from Default, applies any set environment variables and
// validates the result.
func Load() (Config, error) {
	cfg := Default()
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Default returns the configuration used when the environment is empty.
func Default() Config {
	return Config{
		Budget:       evict.DefaultBudget,
		HTTPAddr:     ":8080",
		LogLevel:     "info",
		MaxBodyBytes: 64 << 20,
	}
}

// Validate rejects settings the binaries cannot run with.
func (c Config) Validate() error {
	if c.Budget <= 0 {
		return fmt.Errorf("budget must be positive, got %d", c.Budget)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive, got %d", c.MaxBodyBytes)
	}
	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// Logger builds the process logger at the configured level.
func (c Config) Logger(name string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:  name,
		Level: hclog.LevelFromString(c.LogLevel),
	})
}
