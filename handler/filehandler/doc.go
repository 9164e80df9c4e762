// Package filehandler provides a handler that writes formatted log entries
// to a file with rotation by size or interval.
//
// Output goes through a bufio.Writer; Flush, rotation and Close push it to
// the file. Rotated files are renamed with a timestamp suffix and the
// oldest are removed once MaxBackups is exceeded. With Async set,
// NewFileHandler wraps the file writer in a handler.AsyncHandler.
package filehandler
