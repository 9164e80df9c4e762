package sloghandler

import (
	"context"
	"log/slog"

	"github.com/philipp01105/logtree/core"
	"github.com/philipp01105/logtree/logger"
)

// Handler implements slog.Handler on top of a logger node
type Handler struct {
	node  *logger.Logger
	group string
}

// New creates a slog.Handler logging through node
func New(node *logger.Logger) *Handler {
	return &Handler{node: node}
}

// Enabled reports whether the node lets records at level through
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return h.node.Allows(Verbosity(level))
}

// Handle logs the record on a node derived for its level and attributes
func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	node := h.node.V(Verbosity(record.Level))
	if !node.Allows(0) {
		return nil
	}

	isError := record.Level >= slog.LevelError
	var err error
	fields := make([]core.Field, 0, record.NumAttrs())
	record.Attrs(func(a slog.Attr) bool {
		if isError && err == nil && h.group == "" {
			if e, ok := errorAttr(a); ok {
				err = e
				return true
			}
		}
		fields = appendAttr(fields, h.group, a)
		return true
	})
	if len(fields) > 0 {
		node = node.WithFields(fields...)
	}

	if isError {
		node.Error(err, record.Message)
		return nil
	}
	node.Info(record.Message)
	return nil
}

// WithAttrs returns a handler whose node carries attrs
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	fields := make([]core.Field, 0, len(attrs))
	for _, a := range attrs {
		fields = appendAttr(fields, h.group, a)
	}
	return &Handler{node: h.node.WithFields(fields...), group: h.group}
}

// WithGroup returns a handler prefixing later attribute keys with name
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &Handler{node: h.node, group: join(h.group, name)}
}

// Verbosity maps a slog level to a verbosity offset. Info and above map
// to 0, every four levels below Info add one.
func Verbosity(level slog.Level) core.Level {
	if level >= slog.LevelInfo {
		return 0
	}
	return core.Level((int(slog.LevelInfo) - int(level) + 3) / 4)
}

// appendAttr flattens a into fields. Group attributes contribute their
// members under "group.key"; empty attributes are skipped.
func appendAttr(fields []core.Field, prefix string, a slog.Attr) []core.Field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return fields
	}
	if a.Value.Kind() == slog.KindGroup {
		members := a.Value.Group()
		if len(members) == 0 {
			return fields
		}
		if a.Key != "" {
			prefix = join(prefix, a.Key)
		}
		for _, m := range members {
			fields = appendAttr(fields, prefix, m)
		}
		return fields
	}
	return append(fields, core.Field{
		Key:   join(prefix, a.Key),
		Value: core.ValueOf(a.Value.Any()),
	})
}

func errorAttr(a slog.Attr) (error, bool) {
	if a.Key != "err" && a.Key != "error" {
		return nil, false
	}
	if a.Value.Kind() != slog.KindAny {
		return nil, false
	}
	err, ok := a.Value.Any().(error)
	return err, ok
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
