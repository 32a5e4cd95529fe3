// Package debug provides conditional debug logging for civicdash.
//
// Debug logging is enabled by setting the CIVICDASH_DEBUG environment
// variable or passing --debug:
//
//	CIVICDASH_DEBUG=1 civicdash
//
// The TUI owns the terminal, so messages go to a log file through a zap
// logger rather than to stderr. When disabled (default), all functions are
// no-ops.
//
// Usage:
//
//	debug.Log("navigate to %s", section)
//	debug.LogTiming("render", elapsed)
package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.RWMutex
	enabled bool
	logger  *zap.SugaredLogger
)

func init() {
	if os.Getenv("CIVICDASH_DEBUG") != "" {
		enabled = true
	}
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled && logger != nil
}

// Requested reports whether debugging was asked for via the environment or
// SetEnabled, even if no sink has been opened yet.
func Requested() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = e
}

// Open points debug output at path, creating parent directories. The
// returned function flushes and closes the sink.
func Open(path, level string) (func(), error) {
	if path == "" {
		return func() {}, fmt.Errorf("no debug log path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return func() {}, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return func() {}, fmt.Errorf("opening debug log: %w", err)
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.DebugLevel
	}
	UseLogger(newFileLogger(zapcore.AddSync(f), lvl))

	return func() {
		mu.Lock()
		if logger != nil {
			_ = logger.Sync()
			logger = nil
		}
		mu.Unlock()
		_ = f.Close()
	}, nil
}

// UseLogger installs l as the sink. Tests use zap's observer core here.
func UseLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		logger = nil
		return
	}
	logger = l.Sugar()
}

func newFileLogger(ws zapcore.WriteSyncer, lvl zapcore.Level) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000000")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), ws, lvl)
	return zap.New(core).Named("civicdash")
}

func sink() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled {
		return nil
	}
	return logger
}

// Log writes a debug message if debug logging is enabled.
// Uses printf-style formatting.
func Log(format string, args ...any) {
	if l := sink(); l != nil {
		l.Debugf(format, args...)
	}
}

// Warn writes a warning regardless of the configured debug level.
func Warn(format string, args ...any) {
	if l := sink(); l != nil {
		l.Warnf(format, args...)
	}
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	if l := sink(); l != nil {
		l.Debugw("timing", "op", name, "took", d)
	}
}

// With logs msg with structured key/value pairs.
func With(msg string, keysAndValues ...any) {
	if l := sink(); l != nil {
		l.Debugw(msg, keysAndValues...)
	}
}

// Section logs a section header for visual organization in debug output.
func Section(name string) {
	if l := sink(); l != nil {
		l.Debugf("=== %s ===", name)
	}
}
