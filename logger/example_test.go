package logger_test

import (
	"fmt"
	"io"
	"net/netip"

	"github.com/philipp01105/logtree/core"
	"github.com/philipp01105/logtree/formatter"
	"github.com/philipp01105/logtree/handler/consolehandler"
	"github.com/philipp01105/logtree/logger"
)

func printEntry(e *core.Entry) {
	fmt.Printf("name=%s level=%d msg=%q values=%v\n", e.Name, e.Level, e.Message, e.Values)
}

// Derive a request logger from a root and log through it.
func Example() {
	root := logger.New(printEntry)
	root.SetVerbosity(1)

	req := root.WithName("x").V(1).WithValues("req", core.Text("42"))
	req.Info("hello")

	// Level 2 exceeds the threshold and is dropped
	req.V(1).Info("too verbose")
	// Output:
	// name=x level=1 msg="hello" values=map[req:42]
}

// Attach domain values; each renders its canonical log form.
func ExampleLogger_WithFields() {
	root := logger.NewNamed(printEntry, "resolver")

	root.WithFields(
		logger.DNSName("qname", "example.com"),
		logger.Addr("remote", netip.MustParseAddrPort("192.0.2.1:53")),
	).Info("query")
	// Output:
	// name=resolver level=0 msg="query" values=map[qname:example.com. remote:192.0.2.1:53]
}

// Create a root Logger with the Builder writing through a console handler.
func ExampleNewBuilder() {
	ch := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:    io.Discard,
		Formatter: formatter.NewJSONFormatter(formatter.Config{}),
	})
	defer ch.Close()

	log := logger.NewBuilder().
		WithHandler(ch).
		WithName("api").
		WithVerbosity(2).
		WithFields(logger.String("service", "api")).
		Build()

	log.WithValues("port", core.Int(8080)).Info("ready")
}
