// Package logger builds the slog logger used by the CLI.
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Log level and format values accepted in configuration.
const (
	LevelDebug   = "debug"
	LevelInfo    = "info"
	LevelWarn    = "warn"
	LevelWarning = "warning"
	LevelError   = "error"

	FormatText = "text"
	FormatJSON = "json"
)

// Config represents logger configuration
type Config struct {
	Level     string // "debug", "info", "warn", "error"
	Format    string // "json", "text"
	AddSource bool   // Include source file/line in logs
}

// DefaultConfig returns defaults (fallback when no config provided)
func DefaultConfig() Config {
	return Config{
		Level:  LevelWarn,
		Format: FormatText,
	}
}

// LogLevel converts string level to slog.Level
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn, LevelWarning:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsJSON returns true if format is JSON
func (c Config) IsJSON() bool {
	return strings.ToLower(c.Format) == FormatJSON
}

// New returns a logger writing to w.
func New(c Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     c.LogLevel(),
		AddSource: c.AddSource,
	}
	var h slog.Handler
	if c.IsJSON() {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
