package logger

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap's SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
}

// defaultZapLevel is used when the configured level is unknown.
const defaultZapLevel = zapcore.InfoLevel

// toZapLevel converts a textual level to zapcore.Level; matching ignores case and surrounding spaces.
func toZapLevel(levelStr string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return defaultZapLevel
	}
}

// newConsoleCore builds a zapcore.Core with a console encoder targeting w.
func newConsoleCore(level zapcore.Level, w io.Writer) zapcore.Core {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	encoder := zapcore.NewConsoleEncoder(cfg)
	ws := zapcore.Lock(zapcore.AddSync(w)) // thread-safe writer
	return zapcore.NewCore(encoder, ws, zap.NewAtomicLevelAt(level))
}

// New builds a console logger writing to stdout.
func New(level string) *Logger {
	return NewWithWriter(level, os.Stdout)
}

// NewWithWriter is New with an explicit sink.
func NewWithWriter(level string, w io.Writer) *Logger {
	core := newConsoleCore(toZapLevel(level), w)
	return &Logger{
		SugaredLogger: zap.New(core).Sugar(),
	}
}
