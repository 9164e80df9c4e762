package filehandler

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/philipp01105/logtree/core"
	"github.com/philipp01105/logtree/formatter"
	"github.com/philipp01105/logtree/handler"
)

func TestFileHandler_Write(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "logs", "test.log")

	h, err := NewFileHandler(FileConfig{
		Filename:  filename,
		Formatter: formatter.NewJSONFormatter(formatter.Config{}),
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := h.Handle(&core.Entry{Name: "file", Message: "written"}); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"message":"written"`) {
		t.Errorf("Expected entry in file, got: %s", data)
	}
}

func TestFileHandler_Appends(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "test.log")
	if err := os.WriteFile(filename, []byte("existing\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	h, err := NewFileHandler(FileConfig{Filename: filename})
	if err != nil {
		t.Fatal(err)
	}
	h.Handle(&core.Entry{Message: "appended"})
	h.Close()

	data, _ := os.ReadFile(filename)
	if !strings.HasPrefix(string(data), "existing\n") || !strings.Contains(string(data), "appended") {
		t.Errorf("Expected appended output, got: %s", data)
	}
}

func TestFileHandler_Flush(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "test.log")

	h, err := NewFileHandler(FileConfig{Filename: filename})
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	fh := h.(*FileHandler)
	fh.Handle(&core.Entry{Message: "buffered"})
	if err := fh.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	data, _ := os.ReadFile(filename)
	if !strings.Contains(string(data), "buffered") {
		t.Errorf("Expected flushed entry, got: %s", data)
	}
}

func TestFileHandler_MaxBackups(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "test.log")

	h, err := NewFileHandler(FileConfig{
		Filename:   filename,
		MaxSize:    100, // Small size to trigger rotation
		MaxBackups: 2,   // Keep only 2 backups
	})
	if err != nil {
		t.Fatal(err)
	}

	// Write enough to trigger multiple rotations
	for i := 0; i < 20; i++ {
		if err := h.Handle(&core.Entry{Message: "This is a test message that will trigger rotation"}); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
	}
	h.Close()

	backups, err := filepath.Glob(filename + ".*")
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 {
		t.Errorf("Expected 2 backups, got %d: %v", len(backups), backups)
	}

	snap := h.(handler.StatsProvider).Stats()
	if snap.ProcessedTotal != 20 {
		t.Errorf("Expected 20 processed, got %d", snap.ProcessedTotal)
	}
}

func TestFileHandler_RotateInterval(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "test.log")

	h, err := NewFileHandler(FileConfig{
		Filename:       filename,
		RotateInterval: 20 * time.Millisecond,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	h.Handle(&core.Entry{Message: "first"})

	// Wait for rotation interval
	time.Sleep(40 * time.Millisecond)

	h.Handle(&core.Entry{Message: "second"})
	h.(*FileHandler).Flush()

	backups, _ := filepath.Glob(filename + ".*")
	if len(backups) != 1 {
		t.Fatalf("Expected 1 backup after interval, got %d", len(backups))
	}
	old, _ := os.ReadFile(backups[0])
	if !strings.Contains(string(old), "first") {
		t.Errorf("Expected first entry in backup, got: %s", old)
	}
	current, _ := os.ReadFile(filename)
	if !strings.Contains(string(current), "second") || strings.Contains(string(current), "first") {
		t.Errorf("Expected only second entry in current file, got: %s", current)
	}
}

func TestFileHandler_Async(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "test.log")

	h, err := NewFileHandler(FileConfig{Filename: filename, Async: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := h.(*handler.AsyncHandler); !ok {
		t.Fatalf("Expected *handler.AsyncHandler, got %T", h)
	}

	for i := 0; i < 10; i++ {
		h.Handle(&core.Entry{Message: "async"})
	}
	if err := h.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, _ := os.ReadFile(filename)
	if got := strings.Count(string(data), "async"); got != 10 {
		t.Errorf("Expected 10 entries, got %d", got)
	}
}

func TestFileHandler_Errors(t *testing.T) {
	if _, err := NewFileHandler(FileConfig{}); !errors.Is(err, ErrNoFilename) {
		t.Errorf("Expected ErrNoFilename, got %v", err)
	}

	h, err := NewFileHandler(FileConfig{Filename: filepath.Join(t.TempDir(), "x.log")})
	if err != nil {
		t.Fatal(err)
	}
	h.Close()
	if err := h.Handle(&core.Entry{Message: "late"}); !errors.Is(err, handler.ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
	if err := h.Close(); err != nil {
		t.Errorf("Second Close() error = %v", err)
	}
}
