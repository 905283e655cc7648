// Package logger builds the process-wide zap logger the bot, server,
// scheduler and repositories all derive their component loggers from.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the production JSON logger. Timestamps are ISO8601 so the
// log lines line up with the dates the bot itself renders; durations
// come out human readable for the request middleware.
func New() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	return cfg.Build()
}

// Must panics when the logger cannot be constructed; at that point
// there is nothing sensible left to report the failure with.
func Must(logger *zap.Logger, err error) *zap.Logger {
	if err != nil {
		panic(err)
	}
	return logger
}

// Named derives a child logger tagged with the component name. A nil
// base degrades to a no-op logger so wiring order never matters.
func Named(base *zap.Logger, component string) *zap.Logger {
	if base == nil {
		return zap.NewNop()
	}
	return base.Named(component)
}
