package logging

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// New builds a console logger writing to stderr at the given level
// ("debug", "info", "warn", "error").
func New(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// Init builds the process logger and installs it as L().
func Init(level string) error {
	l, err := New(level)
	if err != nil {
		return err
	}
	logger.Store(l)
	return nil
}

// L returns the process logger. It is a no-op logger until Init is called.
func L() *zap.Logger {
	return logger.Load()
}

// Sync flushes buffered entries, ignoring the usual stderr sync errors.
func Sync() {
	_ = L().Sync()
}
