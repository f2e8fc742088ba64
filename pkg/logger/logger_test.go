package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "json"}, &buf)

	log.Info("table loaded", "path", "items.bin", "records", 42)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "table loaded", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "items.bin", entry["path"])
	assert.Equal(t, float64(42), entry["records"])
}

func TestTextLoggingFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Format: "text"}, &buf)

	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown", "key", "value")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "key=value")
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, Config{Level: tt.level}.LogLevel())
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	c := DefaultConfig()
	assert.NotEmpty(t, c.Level)
	assert.False(t, c.IsJSON())
}
