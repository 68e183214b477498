// Package logger configures the application's logging.
//
// It uses *ZeroLog* for structured logs and bridges the same logger into
// the pgx query tracer when SQL tracing is enabled.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/deppfellow/frases/internal/config"
)

// ServiceName tags every log line.
const ServiceName = "frases"

// New builds the application logger from config, writing to stdout.
func New(cfg *config.Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter builds the application logger writing to w.
//
// Format "console" wraps w in a human-friendly ConsoleWriter; anything else
// emits one JSON object per line.
func NewWithWriter(cfg *config.Config, w io.Writer) zerolog.Logger {
	// Stack() on an event renders github.com/pkg/errors stack traces.
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(cfg.Logging.LogLevel(cfg.Primary.Env))
	if err != nil {
		level = zerolog.InfoLevel
	}

	out := w
	if cfg.Logging.Format == "console" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", ServiceName).
		Str("environment", cfg.Primary.Env).
		Logger()
}

// NewPgxLogger returns the logger handed to the pgx tracer. It keeps the
// application level but tags every line so SQL traces are easy to filter.
func NewPgxLogger(base zerolog.Logger) zerolog.Logger {
	return base.With().Str("component", "pgx").Logger()
}

// GetPgxTraceLogLevel converts a zerolog level into the pgx tracelog level.
func GetPgxTraceLogLevel(level zerolog.Level) tracelog.LogLevel {
	switch level {
	case zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return tracelog.LogLevelError
	case zerolog.Disabled:
		return tracelog.LogLevelNone
	default:
		return tracelog.LogLevelInfo
	}
}
