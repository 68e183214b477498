package config

import (
	"fmt"
	"time"
)

// LoggingConfig holds application logging configuration.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	Level string `koanf:"level"`

	// Format selects the output format: "json" or "console".
	Format string `koanf:"format" validate:"required"`

	// SlowQueryThreshold marks store calls that take longer than this.
	// Env values must be duration strings like "100ms" or "1s".
	SlowQueryThreshold time.Duration `koanf:"slow_query_threshold"`
}

// HealthConfig controls the /status dependency check.
type HealthConfig struct {
	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`
}

// DefaultLoggingConfig provides the logging defaults.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:              "info",
		Format:             "json",
		SlowQueryThreshold: 100 * time.Millisecond,
	}
}

// DefaultHealthConfig provides the health check defaults.
func DefaultHealthConfig() HealthConfig {
	return HealthConfig{Timeout: 5 * time.Second}
}

// Validate applies rules that go beyond struct tags.
func (c LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"":      true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Level] {
		return fmt.Errorf("invalid logging level: %s (must be one of: debug, info, warn, error)", c.Level)
	}

	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("invalid logging format: %s (must be json or console)", c.Format)
	}

	if c.SlowQueryThreshold < 0 {
		return fmt.Errorf("logging slow_query_threshold must be non-negative")
	}

	return nil
}

// LogLevel returns the effective log level for the given environment.
//
// An unset level defaults to "debug" in development and "info" everywhere else.
func (c LoggingConfig) LogLevel(environment string) string {
	if c.Level != "" {
		return c.Level
	}
	if environment == "development" || environment == "local" {
		return "debug"
	}
	return "info"
}
