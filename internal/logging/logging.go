// Package logging provides the slog-backed implementation of interfaces.Logger.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ochairo/release-assets/internal/domain/interfaces"
)

// Log field keys shared across the application
const (
	RunIDKey = "run_id"
	ErrKey   = "error"
)

const logLevelDefault = slog.LevelInfo

// SlogLogger implements interfaces.Logger on top of log/slog
type SlogLogger struct {
	logger *slog.Logger
}

// New creates a logger writing to w. Level and format come from LOG_LEVEL
// (debug, info, warn, error) and LOG_FORMAT (text, json).
func New(w io.Writer) *SlogLogger {
	opts := &slog.HandlerOptions{Level: levelFromEnv(os.Getenv("LOG_LEVEL"))}

	var h slog.Handler
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	return NewWithHandler(h)
}

// NewWithHandler wraps an existing slog handler
func NewWithHandler(h slog.Handler) *SlogLogger {
	return &SlogLogger{logger: slog.New(h)}
}

// With returns a logger that adds fields to every record
func (l *SlogLogger) With(fields ...interfaces.Field) *SlogLogger {
	return &SlogLogger{logger: l.logger.With(toArgs(fields)...)}
}

// Debug logs debug-level messages
func (l *SlogLogger) Debug(msg string, fields ...interfaces.Field) {
	l.log(slog.LevelDebug, msg, fields)
}

// Info logs informational messages
func (l *SlogLogger) Info(msg string, fields ...interfaces.Field) {
	l.log(slog.LevelInfo, msg, fields)
}

// Warn logs warning messages
func (l *SlogLogger) Warn(msg string, fields ...interfaces.Field) {
	l.log(slog.LevelWarn, msg, fields)
}

// Error logs error messages
func (l *SlogLogger) Error(msg string, fields ...interfaces.Field) {
	l.log(slog.LevelError, msg, fields)
}

func (l *SlogLogger) log(level slog.Level, msg string, fields []interfaces.Field) {
	l.logger.Log(context.Background(), level, msg, toArgs(fields)...)
}

func toArgs(fields []interfaces.Field) []any {
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		args = append(args, slog.Any(f.Key, f.Value))
	}
	return args
}

func levelFromEnv(v string) slog.Level {
	switch strings.ToLower(v) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		return slog.LevelInfo
	default:
		return logLevelDefault
	}
}
