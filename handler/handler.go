package handler

import (
	"github.com/philipp01105/logtree/core"
)

// Handler defines the interface for log handlers
type Handler interface {
	// Handle processes a log entry
	Handle(entry *core.Entry) error

	// Close closes the handler and releases resources
	Close() error
}

// StatsProvider is implemented by handlers that keep delivery counters
type StatsProvider interface {
	Stats() Snapshot
}

// Sink adapts h to the core.Sink callback a logger tree delivers to.
// Errors returned by h are passed to onErr when it is non-nil and never
// reach the logging call.
func Sink(h Handler, onErr func(error)) core.Sink {
	if h == nil {
		return core.Discard
	}
	return func(entry *core.Entry) {
		if err := h.Handle(entry); err != nil && onErr != nil {
			onErr(err)
		}
	}
}

