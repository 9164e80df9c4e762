package consolehandler

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/philipp01105/logtree/core"
	"github.com/philipp01105/logtree/formatter"
	"github.com/philipp01105/logtree/handler"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

// plainFormatter implements only formatter.Formatter
type plainFormatter struct{}

func (plainFormatter) Format(entry *core.Entry) ([]byte, error) {
	return []byte(entry.Message + "\n"), nil
}

func TestConsoleHandler_Sync(t *testing.T) {
	var buf bytes.Buffer
	h := NewConsoleHandler(ConsoleConfig{
		Writer:    &buf,
		Formatter: formatter.NewTextFormatter(formatter.Config{}),
	})
	defer h.Close()

	err := h.Handle(&core.Entry{Name: "x", Message: "test message"})
	if err != nil {
		t.Errorf("Handle() error = %v", err)
	}

	if !strings.Contains(buf.String(), "x: test message") {
		t.Errorf("Expected 'x: test message' in output, got: %s", buf.String())
	}

	snap := h.(handler.StatsProvider).Stats()
	if snap.ProcessedTotal != 1 {
		t.Errorf("Expected 1 processed, got %d", snap.ProcessedTotal)
	}
}

func TestConsoleHandler_PlainFormatter(t *testing.T) {
	var buf bytes.Buffer
	h := NewConsoleHandler(ConsoleConfig{Writer: &buf, Formatter: plainFormatter{}})
	defer h.Close()

	if err := h.Handle(&core.Entry{Message: "plain"}); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if buf.String() != "plain\n" {
		t.Errorf("Expected 'plain', got: %q", buf.String())
	}
}

func TestConsoleHandler_WriteError(t *testing.T) {
	h := NewConsoleHandler(ConsoleConfig{Writer: failingWriter{}})
	defer h.Close()

	if err := h.Handle(&core.Entry{Message: "lost"}); err == nil {
		t.Fatal("Expected write error")
	}

	snap := h.(handler.StatsProvider).Stats()
	if snap.FailedTotal != 1 || snap.ProcessedTotal != 0 {
		t.Errorf("Expected 1 failed and 0 processed, got %+v", snap)
	}
}

func TestConsoleHandler_Closed(t *testing.T) {
	var buf bytes.Buffer
	h := NewConsoleHandler(ConsoleConfig{Writer: &buf})
	if err := h.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if err := h.Handle(&core.Entry{Message: "late"}); !errors.Is(err, handler.ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected no output after Close, got: %s", buf.String())
	}
}

func TestConsoleHandler_Async(t *testing.T) {
	var buf bytes.Buffer
	h := NewConsoleHandler(ConsoleConfig{
		Writer:      &buf,
		Async:       true,
		AsyncConfig: handler.AsyncConfig{BufferSize: 100, ErrorPolicy: handler.Block},
		Formatter:   formatter.NewTextFormatter(formatter.Config{}),
	})

	if _, ok := h.(*handler.AsyncHandler); !ok {
		t.Fatalf("Expected *handler.AsyncHandler, got %T", h)
	}

	for i := 0; i < 50; i++ {
		if err := h.Handle(&core.Entry{Message: "async test"}); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
	}

	// Close drains the queue
	h.Close()

	count := strings.Count(buf.String(), "async test")
	if count != 50 {
		t.Errorf("Expected 50 messages, got %d", count)
	}
}

func TestConsoleHandler_Parallel(t *testing.T) {
	var buf bytes.Buffer
	h := NewConsoleHandler(ConsoleConfig{
		Writer:    &buf,
		Formatter: formatter.NewJSONFormatter(formatter.Config{}),
	})
	defer h.Close()

	const goroutines = 8
	const msgs = 100

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < msgs; i++ {
				h.Handle(&core.Entry{Message: "parallel"})
			}
		}()
	}
	wg.Wait()

	// Every line must be intact
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != goroutines*msgs {
		t.Fatalf("Expected %d lines, got %d", goroutines*msgs, len(lines))
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "{") || !strings.HasSuffix(line, "}") {
			t.Fatalf("Interleaved line: %q", line)
		}
	}

	snap := h.(handler.StatsProvider).Stats()
	if snap.ProcessedTotal != goroutines*msgs {
		t.Errorf("Expected %d processed, got %d", goroutines*msgs, snap.ProcessedTotal)
	}
}
