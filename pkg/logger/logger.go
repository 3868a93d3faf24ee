// Package logger is a thin wrapper around zap with the two encodings the
// tool needs: human-readable console output for interactive runs and JSON
// for anything that gets collected.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger.
type Logger struct {
	*zap.Logger
}

// New creates a logger. level is a zap level name ("debug", "info", ...);
// encoding is "console" or "json".
func New(level, encoding string) (*Logger, error) {
	var cfg zap.Config

	if encoding == "console" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	cfg.Level = lvl

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{l}, nil
}

// Nop returns a logger that discards everything. Used in tests and as the
// fallback before configuration is loaded.
func Nop() *Logger {
	return &Logger{zap.NewNop()}
}

// With creates a child logger with the given fields.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{l.Logger.With(fields...)}
}
