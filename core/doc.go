// Package core defines the shared types used across logtree.
//
// It provides the Level type used for verbosity filtering, the Entry type
// that represents a single accepted log call, the Sink callback that
// receives entries, and the Field and Loggable types for structured
// key/value context.
//
// An Entry is built only after a logger node has decided the call passes
// its verbosity threshold. It is handed to the Sink by ownership transfer:
// the logger never touches it again, so sinks may keep, queue or mutate
// it freely.
//
// Loggable is the capability every context value must provide: a
// deterministic conversion to its log string. The package ships adapters
// for plain text, numbers, durations, times, network addresses and DNS
// names. ValueOf picks an adapter for arbitrary values and is what the
// slog and logr front-ends use.
package core
