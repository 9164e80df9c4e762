// Package logger is the public API of logtree. Most users only need to
// import this package.
//
// A Logger is a node in a tree. Roots are created with New or NewNamed (or
// the Builder) and hold the Sink every descendant delivers to. Children are
// derived with three independent combinators:
//
//	req := root.WithName("resolver").V(1).WithValues("qname", core.DNSName("example.com"))
//	req.Info("cache miss")
//
// V raises the verbosity level messages are tagged at, WithValues and
// WithFields attach key/value context and WithName extends the dotted name.
// Each returns a new Logger and leaves the receiver unchanged.
//
// Nodes keep only their own values. When a message passes the threshold
// check the node walks its ancestors and merges their values into the
// Entry, the node's own keys taking precedence. Level checks happen before
// the merge and before any allocation, so suppressed messages cost a single
// comparison.
//
// The threshold is the only mutable state of a node and is copied into
// children when they are derived. It is stored atomically, so SetVerbosity
// may be called while other goroutines log.
//
// The package also holds an optional process-wide Logger. Default reports
// whether one has been set; SetDefault is meant to be called once by the
// program's startup code.
package logger
