// Package zerologhandler delivers logger tree entries to a
// github.com/rs/zerolog Logger.
package zerologhandler

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/philipp01105/logtree/core"
	"github.com/philipp01105/logtree/handler"
)

const (
	// NameField holds the dotted logger name
	NameField = "logger"
	// VerbosityField holds the entry's verbosity level
	VerbosityField = "v"
)

// Handler writes entries to a zerolog Logger
type Handler struct {
	logger zerolog.Logger
	closer io.Closer
	stats  *handler.Stats
}

// New creates a handler writing through l
func New(l zerolog.Logger) *Handler {
	return &Handler{logger: l, stats: handler.NewStats()}
}

// NewWriter creates a handler emitting zerolog JSON with timestamps to w.
// When pretty is set the output goes through zerolog.ConsoleWriter.
func NewWriter(w io.Writer, pretty bool) *Handler {
	if w == nil {
		w = os.Stdout
	}
	var closer io.Closer
	if c, ok := w.(io.Closer); ok && w != os.Stdout && w != os.Stderr {
		closer = c
	}
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}
	h := New(zerolog.New(w).With().Timestamp().Logger())
	h.closer = closer
	return h
}

// Handle logs the entry at zerolog's info or error level
func (h *Handler) Handle(entry *core.Entry) error {
	var event *zerolog.Event
	if entry.HasError {
		event = h.logger.Error().Str(zerolog.ErrorFieldName, entry.Error)
	} else {
		event = h.logger.Info()
	}
	// Disabled by the zerolog logger's own level
	if event == nil {
		return nil
	}

	if entry.Name != "" {
		event = event.Str(NameField, entry.Name)
	}
	event = event.Uint32(VerbosityField, uint32(entry.Level))
	for _, k := range entry.Keys() {
		event = event.Str(k, entry.Values[k])
	}

	event.Msg(entry.Message)
	h.stats.IncrementProcessed()
	return nil
}

// Stats returns a snapshot of the current statistics
func (h *Handler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close closes the underlying writer when the handler opened it through
// NewWriter with a closable writer.
func (h *Handler) Close() error {
	if h.closer != nil {
		return h.closer.Close()
	}
	return nil
}
