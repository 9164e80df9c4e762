package logger

import (
	"sync/atomic"
)

// defaultLogger stays nil until the process bootstrap calls SetDefault.
var defaultLogger atomic.Pointer[Logger]

// Default returns the process-wide logger and whether one has been set
func Default() (*Logger, bool) {
	l := defaultLogger.Load()
	return l, l != nil
}

// SetDefault sets the process-wide logger. It is meant to be called once
// during startup.
func SetDefault(l *Logger) {
	defaultLogger.Store(l)
}

// Package-level convenience functions using the default logger. They do
// nothing while no default logger is set.

// Info logs a message using the default logger
func Info(msg string) {
	if l, ok := Default(); ok {
		l.Info(msg)
	}
}

// Error logs an error message using the default logger
func Error(err error, msg string) {
	if l, ok := Default(); ok {
		l.Error(err, msg)
	}
}

// Named returns a child of the default logger, or an anonymous logger that
// discards everything when no default is set.
func Named(name string) *Logger {
	if l, ok := Default(); ok {
		return l.WithName(name)
	}
	return NewNamed(nil, name)
}
