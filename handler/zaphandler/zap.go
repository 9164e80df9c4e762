// Package zaphandler delivers logger tree entries to a go.uber.org/zap
// Logger.
//
// Entry names become zap logger names, the verbosity level is written as
// the "v" field and merged values become string fields in key order.
// Error-class entries are logged at zap's ErrorLevel with the detail text
// under "error"; everything else at InfoLevel.
package zaphandler

import (
	"errors"
	"syscall"

	"go.uber.org/zap"

	"github.com/philipp01105/logtree/core"
	"github.com/philipp01105/logtree/handler"
)

// Handler writes entries to a zap Logger
type Handler struct {
	logger *zap.Logger
	stats  *handler.Stats
}

// New creates a handler writing to l. A nil l selects zap.NewNop.
func New(l *zap.Logger) *Handler {
	if l == nil {
		l = zap.NewNop()
	}
	return &Handler{logger: l, stats: handler.NewStats()}
}

// NewProduction creates a handler on zap's production JSON configuration
func NewProduction(options ...zap.Option) (*Handler, error) {
	l, err := zap.NewProduction(options...)
	if err != nil {
		return nil, err
	}
	return New(l), nil
}

// Handle logs the entry through zap. zap reports write failures to its own
// ErrorOutput, so Handle never fails.
func (h *Handler) Handle(entry *core.Entry) error {
	l := h.logger
	if entry.Name != "" {
		l = l.Named(entry.Name)
	}

	fields := make([]zap.Field, 0, len(entry.Values)+2)
	fields = append(fields, zap.Uint32("v", uint32(entry.Level)))
	for _, k := range entry.Keys() {
		fields = append(fields, zap.String(k, entry.Values[k]))
	}

	if entry.HasError {
		fields = append(fields, zap.String("error", entry.Error))
		l.Error(entry.Message, fields...)
	} else {
		l.Info(entry.Message, fields...)
	}

	h.stats.IncrementProcessed()
	return nil
}

// Stats returns a snapshot of the current statistics
func (h *Handler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close flushes the zap Logger. Sync errors from terminals, which cannot
// be fsynced, are ignored.
func (h *Handler) Close() error {
	err := h.logger.Sync()
	if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	return err
}
