package logger

import (
	"sync/atomic"

	"github.com/philipp01105/logtree/core"
	"github.com/philipp01105/logtree/handler"
)

// Logger is one node of a logger tree. Apart from its verbosity threshold a
// Logger never changes after construction; V, WithValues, WithFields and
// WithName derive children that point back at it.
type Logger struct {
	parent    *Logger
	sink      core.Sink
	name      string
	level     core.Level
	verbosity atomic.Uint32
	values    map[string]string
}

// New creates an anonymous root logger delivering entries to sink. The
// verbosity is core.Unlimited until SetVerbosity is called.
func New(sink core.Sink) *Logger {
	return NewNamed(sink, "")
}

// NewNamed creates a named root logger
func NewNamed(sink core.Sink, name string) *Logger {
	if sink == nil {
		sink = core.Discard
	}
	l := &Logger{sink: sink, name: name}
	l.verbosity.Store(uint32(core.Unlimited))
	return l
}

// child creates a node below l sharing its sink and a copy of its current
// threshold.
func (l *Logger) child(name string, level core.Level, values map[string]string) *Logger {
	c := &Logger{
		parent: l,
		sink:   l.sink,
		name:   name,
		level:  level,
		values: values,
	}
	c.verbosity.Store(l.verbosity.Load())
	return c
}

// V returns a child whose messages are tagged extra levels deeper
func (l *Logger) V(extra core.Level) *Logger {
	return l.child(l.name, l.level.Add(extra), nil)
}

// WithValues returns a child that carries key with the log string of value
func (l *Logger) WithValues(key string, value core.Loggable) *Logger {
	return l.WithFields(core.Field{Key: key, Value: value})
}

// WithFields returns a single child carrying all fields. When a key repeats
// within fields the last one wins.
func (l *Logger) WithFields(fields ...core.Field) *Logger {
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		values[f.Key] = f.StringValue()
	}
	return l.child(l.name, l.level, values)
}

// WithName returns a child whose name is l's name extended by "." and name
func (l *Logger) WithName(name string) *Logger {
	if l.name != "" {
		name = l.name + "." + name
	}
	return l.child(name, l.level, nil)
}

// Verbosity returns the threshold of this node
func (l *Logger) Verbosity() core.Level {
	return core.Level(l.verbosity.Load())
}

// SetVerbosity sets the threshold of this node. Children derived earlier
// keep the threshold they copied.
func (l *Logger) SetVerbosity(v core.Level) {
	l.verbosity.Store(uint32(v))
}

// Level returns the verbosity level messages of this node are tagged at
func (l *Logger) Level() core.Level {
	return l.level
}

// Name returns the dotted name, empty for anonymous loggers
func (l *Logger) Name() string {
	return l.name
}

// Parent returns the node l was derived from, nil for roots
func (l *Logger) Parent() *Logger {
	return l.parent
}

// Enabled reports whether this logger may log at all. It always returns
// true and is not consulted by Info or Error.
func (l *Logger) Enabled() bool {
	return true
}

// Allows reports whether a message logged through l.V(extra) would pass
// the verbosity check.
func (l *Logger) Allows(extra core.Level) bool {
	return l.level.Add(extra) <= l.Verbosity()
}

// Info logs msg
func (l *Logger) Info(msg string) {
	l.logMessage(msg, "", false)
}

// Error logs msg as an error-class entry carrying err's text. A nil err
// still produces an error-class entry with empty detail.
func (l *Logger) Error(err error, msg string) {
	var text string
	if err != nil {
		text = err.Error()
	}
	l.logMessage(msg, text, true)
}

// logMessage checks the level before anything else so that suppressed calls
// neither build an entry nor walk the ancestors.
func (l *Logger) logMessage(msg, errText string, hasError bool) {
	if l.level > l.Verbosity() {
		return
	}

	entry := &core.Entry{
		Level:    l.level,
		Name:     l.name,
		Message:  msg,
		Error:    errText,
		HasError: hasError,
		Values:   make(map[string]string, len(l.values)),
	}

	// Closer nodes win: only keys not yet present are copied
	for n := l; n != nil; n = n.parent {
		for k, v := range n.values {
			if _, ok := entry.Values[k]; !ok {
				entry.Values[k] = v
			}
		}
	}

	l.sink(entry)
}

// Builder provides a fluent API for building root loggers
type Builder struct {
	sink      core.Sink
	name      string
	verbosity core.Level
	fields    []core.Field
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{
		verbosity: core.Unlimited,
	}
}

// WithSink sets the sink
func (b *Builder) WithSink(sink core.Sink) *Builder {
	b.sink = sink
	return b
}

// WithHandler sets a handler as the sink. Handler errors are dropped; use
// WithSink with handler.Sink to observe them.
func (b *Builder) WithHandler(h handler.Handler) *Builder {
	b.sink = handler.Sink(h, nil)
	return b
}

// WithName sets the root name
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithVerbosity sets the root threshold
func (b *Builder) WithVerbosity(v core.Level) *Builder {
	b.verbosity = v
	return b
}

// WithFields adds context carried by every entry of the tree
func (b *Builder) WithFields(fields ...core.Field) *Builder {
	b.fields = append(b.fields, fields...)
	return b
}

// Build creates the root Logger
func (b *Builder) Build() *Logger {
	l := NewNamed(b.sink, b.name)
	l.SetVerbosity(b.verbosity)
	if len(b.fields) > 0 {
		l.values = make(map[string]string, len(b.fields))
		for _, f := range b.fields {
			l.values[f.Key] = f.StringValue()
		}
	}
	return l
}
