// Package logrsink implements github.com/go-logr/logr on top of a logger
// tree, so libraries that accept a logr.Logger can log through it.
package logrsink

import (
	"github.com/go-logr/logr"

	"github.com/philipp01105/logtree/core"
	"github.com/philipp01105/logtree/logger"
)

// Sink is a logr.LogSink backed by a logger node
type Sink struct {
	node *logger.Logger
}

var _ logr.LogSink = (*Sink)(nil)

// New returns a logr.Logger logging through node
func New(node *logger.Logger) logr.Logger {
	return logr.New(NewSink(node))
}

// NewSink returns the LogSink for node
func NewSink(node *logger.Logger) *Sink {
	return &Sink{node: node}
}

// Node returns the logger node behind the sink
func (s *Sink) Node() *logger.Logger {
	return s.node
}

// Init is a no-op; call site information is not recorded.
func (s *Sink) Init(logr.RuntimeInfo) {}

// Enabled reports whether messages at the logr V level pass the node's
// threshold.
func (s *Sink) Enabled(level int) bool {
	return s.node.Allows(toLevel(level))
}

// Info logs msg on a node level deeper carrying keysAndValues
func (s *Sink) Info(level int, msg string, keysAndValues ...any) {
	s.derive(toLevel(level), keysAndValues).Info(msg)
}

// Error logs an error entry. logr errors are not subject to V levels.
func (s *Sink) Error(err error, msg string, keysAndValues ...any) {
	s.derive(0, keysAndValues).Error(err, msg)
}

// WithValues returns a sink whose node carries keysAndValues
func (s *Sink) WithValues(keysAndValues ...any) logr.LogSink {
	fields := core.FieldsFromKV(keysAndValues)
	if len(fields) == 0 {
		return s
	}
	return &Sink{node: s.node.WithFields(fields...)}
}

// WithName returns a sink whose node name is extended by name
func (s *Sink) WithName(name string) logr.LogSink {
	return &Sink{node: s.node.WithName(name)}
}

func (s *Sink) derive(level core.Level, keysAndValues []any) *logger.Logger {
	node := s.node
	if level > 0 {
		node = node.V(level)
	}
	if fields := core.FieldsFromKV(keysAndValues); len(fields) > 0 {
		node = node.WithFields(fields...)
	}
	return node
}

func toLevel(level int) core.Level {
	if level < 0 {
		return 0
	}
	return core.Level(level)
}
