// Package logging provides the logger used across modwatch.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger takes a message followed by alternating key/value pairs.
type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, kv ...any)
}

// ZapLogger adapts a zap SugaredLogger to Logger.
type ZapLogger struct {
	s *zap.SugaredLogger
}

func (l ZapLogger) Debug(msg string, kv ...any) { l.s.Debugw(msg, kv...) }
func (l ZapLogger) Info(msg string, kv ...any)  { l.s.Infow(msg, kv...) }
func (l ZapLogger) Warn(msg string, kv ...any)  { l.s.Warnw(msg, kv...) }
func (l ZapLogger) Error(msg string, kv ...any) { l.s.Errorw(msg, kv...) }

// Sync flushes buffered entries.
func (l ZapLogger) Sync() error { return l.s.Sync() }

// New builds a stderr logger. level is a zap level name ("debug", "info", ...),
// format is "console" or "json". Empty values mean info/console.
func New(level, format string) (ZapLogger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
			return ZapLogger{}, fmt.Errorf("logging level %q: %w", level, err)
		}
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	var enc zapcore.Encoder
	switch strings.ToLower(format) {
	case "", "console", "text":
		enc = zapcore.NewConsoleEncoder(encCfg)
	case "json":
		encCfg = zap.NewProductionEncoderConfig()
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		return ZapLogger{}, fmt.Errorf("unknown logging format %q", format)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), lvl)
	return ZapLogger{s: zap.New(core).Sugar()}, nil
}

// Nop discards everything.
func Nop() ZapLogger {
	return ZapLogger{s: zap.NewNop().Sugar()}
}
