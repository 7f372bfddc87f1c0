/*
Package config loads server configuration from the environment.

PURPOSE:
  One struct, filled by envconfig under the ATTENDANCE_ prefix, validated
  before the server starts. Command-line flags in cmd/server may override
  individual fields after loading.

ENVIRONMENT:
  ATTENDANCE_PORT              HTTP port (default 8080)
  ATTENDANCE_DB_PATH           SQLite path (default attendance.db, ":memory:" ok)
  ATTENDANCE_MAX_UPLOAD_BYTES  Upload size cap (default 10 MiB)
  ATTENDANCE_LOG_LEVEL         debug|info|warn|error (default info)
*/
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
)

const envPrefix = "attendance"

// Config holds all server settings.
type Config struct {
	Port           int    `envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	DBPath         string `envconfig:"DB_PATH" default:"attendance.db" validate:"required"`
	MaxUploadBytes int64  `envconfig:"MAX_UPLOAD_BYTES" default:"10485760" validate:"min=1024"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
}

// Load reads and validates configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// ZapLevel maps the configured log level to a zap level.
func (c *Config) ZapLevel() zapcore.Level {
	switch c.LogLevel {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
