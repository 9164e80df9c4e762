// Package consolehandler provides a handler that writes formatted log
// entries to any io.Writer (default: os.Stdout).
//
// Writes are serialized by a mutex and formatted into a handler-owned
// buffer when the formatter implements formatter.BufferFormatter. With
// Async set, NewConsoleHandler wraps the writer in a handler.AsyncHandler.
package consolehandler
