package logger

import (
	"io"
	"testing"

	"github.com/philipp01105/logtree/core"
	"github.com/philipp01105/logtree/formatter"
	"github.com/philipp01105/logtree/handler"
	"github.com/philipp01105/logtree/handler/consolehandler"
)

// BenchmarkInfoNoValues benchmarks Info() on a root with a discarding sink.
func BenchmarkInfoNoValues(b *testing.B) {
	l := New(core.Discard)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.Info("test message")
	}
}

// BenchmarkInfoDeepChain benchmarks the ancestor merge over a chain of
// five value-carrying nodes.
func BenchmarkInfoDeepChain(b *testing.B) {
	l := New(core.Discard)
	for _, k := range []string{"a", "b", "c", "d", "e"} {
		l = l.WithValues(k, core.Text("value")).WithName(k)
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.Info("test message")
	}
}

// BenchmarkFiltered benchmarks a suppressed V() call.
// Target: 0 allocs/op
func BenchmarkFiltered(b *testing.B) {
	root := New(core.Discard)
	root.SetVerbosity(0)
	l := root.WithValues("key", core.Text("value")).V(1)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.Info("debug message")
	}
}

// BenchmarkText benchmarks the full path into a text console handler.
func BenchmarkText(b *testing.B) {
	h := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:    io.Discard,
		Formatter: formatter.NewTextFormatter(formatter.Config{}),
	})
	defer h.Close()

	l := New(handler.Sink(h, nil)).WithName("bench").WithValues("key1", core.Text("value1"))

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.Info("test message")
	}
}
