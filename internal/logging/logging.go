// Package logging configures the process-wide logr.Logger backed by zap.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels for logger.V(...).
const (
	DEBUG = 1
	TRACE = 2
)

// EnvLogLevel overrides the configured level when set.
const EnvLogLevel = "PROPBUDGET_LOG_LEVEL"

var (
	mu  sync.RWMutex
	log = logr.Discard()
)

// Options controls logger construction.
type Options struct {
	// Level is one of error, warn, info, debug, trace.
	Level string
	// JSON selects the production JSON encoder instead of the console encoder.
	JSON bool
	// Output defaults to os.Stderr.
	Output io.Writer
}

// Log returns the process-wide logger.
func Log() logr.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// SetLogger replaces the process-wide logger.
func SetLogger(l logr.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l
}

// NewLogger builds a zap-backed logr.Logger and installs it as the
// process-wide logger.
func NewLogger(opts Options) (logr.Logger, error) {
	raw := opts.Level
	if env := os.Getenv(EnvLogLevel); env != "" {
		raw = env
	}
	level, err := ParseLevel(raw)
	if err != nil {
		return logr.Discard(), err
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var encoder zapcore.Encoder
	if opts.JSON {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(cfg)
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(out), zap.NewAtomicLevelAt(level))
	l := zapr.NewLogger(zap.New(core))
	SetLogger(l)
	return l, nil
}

// NewTestLogger installs a debug-level console logger for test suites.
func NewTestLogger() logr.Logger {
	l, err := NewLogger(Options{Level: "trace"})
	if err != nil {
		panic(err)
	}
	return l
}

// ParseLevel maps a level name to the zap level. logr verbosity V(n) is
// emitted at zap level -n, so "debug" enables V(DEBUG) and "trace" V(TRACE).
func ParseLevel(raw string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.Level(-DEBUG), nil
	case "trace":
		return zapcore.Level(-TRACE), nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", raw)
	}
}

// FromContext returns the logger stored in ctx, falling back to the
// process-wide logger.
func FromContext(ctx context.Context) logr.Logger {
	if l, err := logr.FromContext(ctx); err == nil {
		return l
	}
	return Log()
}

// IntoContext stores l in ctx.
func IntoContext(ctx context.Context, l logr.Logger) context.Context {
	return logr.NewContext(ctx, l)
}
