package core

import (
	"maps"
	"math"
	"slices"
	"strconv"
)

// Level is a verbosity level. Messages are tagged with a Level and a logger
// node emits them only while the Level does not exceed its threshold.
type Level uint32

// Unlimited is the threshold of a logger whose verbosity was never set.
// Every Level passes it.
const Unlimited Level = math.MaxUint32

// Add returns l+extra, saturating at Unlimited.
func (l Level) Add(extra Level) Level {
	if extra > Unlimited-l {
		return Unlimited
	}
	return l + extra
}

// String returns the decimal form of the level, or "unlimited".
func (l Level) String() string {
	if l == Unlimited {
		return "unlimited"
	}
	return strconv.FormatUint(uint64(l), 10)
}

// Entry represents one accepted log call with its merged context
type Entry struct {
	// Level is the verbosity the emitting logger is tagged at
	Level Level
	// Name is the dotted logger name, empty for anonymous loggers
	Name string
	// Message is the log message text
	Message string
	// Error holds the error detail text; only meaningful when HasError is set
	Error string
	// HasError marks entries produced by error-class calls
	HasError bool
	// Values is the context merged from the emitting logger and its ancestors
	Values map[string]string
}

// Keys returns the keys of Values in ascending order
func (e *Entry) Keys() []string {
	if len(e.Values) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(e.Values))
}

// Sink receives finished entries. It is called once per accepted log call
// and owns the entry afterwards. Sinks must not panic on entry content;
// delivery failures are theirs to handle.
type Sink func(entry *Entry)

// Discard is a Sink that drops every entry.
func Discard(*Entry) {}
