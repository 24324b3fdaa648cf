// Package logger wraps zap construction so that callers configure logging
// with a level name and receive a ready *zap.Logger.
package logger

import "go.uber.org/zap"

// Logger carries the application logger. Log is nil until Init succeeds.
type Logger struct {
	// Log is the configured zap logger.
	Log *zap.Logger
}

// New returns an uninitialized Logger.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init builds a production zap logger at the given level ("debug", "info",
// "warn", "error"). Returns an error if the level string is invalid or the
// logger cannot be built.
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	log, err := cfg.Build()
	if err != nil {
		return err
	}

	l.Log = log
	return nil
}
