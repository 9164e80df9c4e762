// Package handler provides the Handler interface and the plumbing that
// connects handlers to a logger tree.
//
// A logger tree delivers finished entries to a core.Sink callback. Sink
// turns any Handler into such a callback; handler errors are reported to an
// optional error function and never surface at the logging call site.
// Handlers treat the entries they receive as read-only, so one entry may
// be shared by the children of a MultiHandler.
//
// Generic wrappers:
//
//   - AsyncHandler queues entries on a bounded channel and processes them
//     on one background goroutine. When the queue is full, info entries
//     follow InfoPolicy (DropNewest by default) and error entries follow
//     ErrorPolicy (Block with a timeout by default), so low-priority logs
//     never stall the application while errors are not silently dropped.
//   - MultiHandler fans out a single entry to multiple child handlers and
//     combines their errors with go.uber.org/multierr.
//
// Backends live in subpackages: consolehandler (any io.Writer),
// filehandler (rotating files), zaphandler and zerologhandler. The
// sloghandler subpackage goes the other way, exposing a logger tree as a
// log/slog.Handler.
//
// Handlers that count dropped, blocked, processed and failed entries
// expose them through StatsProvider.
package handler
