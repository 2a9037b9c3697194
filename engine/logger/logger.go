// package logger wraps a process-wide structured logger for the engine.
// All engine packages log through these helpers so output formatting and
// level filtering stay in one place.
package logger

import (
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var once sync.Once

var singleton *log.Logger

func get() *log.Logger {
	once.Do(func() {
		l := log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    false,
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          "lumen",
		})
		l.SetLevel(log.InfoLevel)
		singleton = l
	})
	return singleton
}

// SetDebug enables or disables debug-level output.
//
// Parameters:
//   - enabled: true to log at debug level, false for info level
func SetDebug(enabled bool) {
	if enabled {
		get().SetLevel(log.DebugLevel)
	} else {
		get().SetLevel(log.InfoLevel)
	}
}

// Debug logs a formatted message at debug level.
func Debug(msg string, args ...any) {
	get().Debugf(msg, args...)
}

// Info logs a formatted message at info level.
func Info(msg string, args ...any) {
	get().Infof(msg, args...)
}

// Warn logs a formatted message at warn level.
func Warn(msg string, args ...any) {
	get().Warnf(msg, args...)
}

// Error logs a formatted message at error level.
func Error(msg string, args ...any) {
	get().Errorf(msg, args...)
}

// Fatal logs a formatted message at fatal level and exits the process.
func Fatal(msg string, args ...any) {
	get().Fatalf(msg, args...)
}
