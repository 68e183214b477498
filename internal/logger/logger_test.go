package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/frases/internal/config"
)

func TestNewWithWriter(t *testing.T) {
	cfg := config.Default()
	cfg.Primary.Env = "production"
	cfg.Logging.Level = "warn"

	var buf bytes.Buffer
	log := NewWithWriter(cfg, &buf)

	log.Info().Msg("dropped")
	log.Warn().Msg("kept")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))

	assert.Equal(t, "kept", line["message"])
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, ServiceName, line["service"])
	assert.Equal(t, "production", line["environment"])
}

func TestNewWithWriter_Console(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Format = "console"

	var buf bytes.Buffer
	log := NewWithWriter(cfg, &buf)
	log.Info().Msg("hello")

	assert.Contains(t, buf.String(), "hello")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestGetPgxTraceLogLevel(t *testing.T) {
	tests := []struct {
		level zerolog.Level
		want  tracelog.LogLevel
	}{
		{zerolog.TraceLevel, tracelog.LogLevelTrace},
		{zerolog.DebugLevel, tracelog.LogLevelDebug},
		{zerolog.InfoLevel, tracelog.LogLevelInfo},
		{zerolog.WarnLevel, tracelog.LogLevelWarn},
		{zerolog.ErrorLevel, tracelog.LogLevelError},
		{zerolog.PanicLevel, tracelog.LogLevelError},
		{zerolog.Disabled, tracelog.LogLevelNone},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, GetPgxTraceLogLevel(tt.level))
		})
	}
}
