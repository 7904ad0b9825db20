package telemetry

import (
	"sort"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = mustBuild(false)
)

// Init replaces the process logger. Debug enables debug-level output.
func Init(debug bool) error {
	l, err := build(debug)
	if err != nil {
		return err
	}
	SetLogger(l)
	return nil
}

// SetLogger swaps the process logger; tests use it with zaptest/observer cores.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	logger = l
	mu.Unlock()
}

// Logger returns the current process logger.
func Logger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	Logger().Info(msg, toZapFields(fields)...)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	Logger().Error(msg, toZapFields(fields)...)
}

// Sync flushes buffered log entries.
func Sync() {
	_ = Logger().Sync()
}

func toZapFields(fields map[string]any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}

func build(debug bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	cfg := zap.Config{
		Encoding:         "json",
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:   "msg",
			LevelKey:     "level",
			EncodeLevel:  zapcore.LowercaseLevelEncoder,
			TimeKey:      "ts",
			EncodeTime:   zapcore.RFC3339TimeEncoder,
			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}
	return cfg.Build()
}

func mustBuild(debug bool) *zap.Logger {
	l, err := build(debug)
	if err != nil {
		return zap.NewNop()
	}
	return l
}
