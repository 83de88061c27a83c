package logger

import (
	"sync"
)

// Log levels accepted in configuration.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	// globalLogger holds the singleton logger instance.
	globalLogger *Logger
	once         sync.Once
)

// Get returns the process-wide logger. The first call fixes the level;
// later calls return the already initialized instance.
func Get(level string) *Logger {
	once.Do(func() {
		globalLogger = New(level)
	})
	return globalLogger
}
