package filehandler

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/philipp01105/logtree/core"
	"github.com/philipp01105/logtree/formatter"
	"github.com/philipp01105/logtree/handler"
)

// ErrNoFilename is returned when FileConfig has no Filename
var ErrNoFilename = errors.New("filename is required")

// backupTimeFormat names rotated files; nanoseconds keep names unique
const backupTimeFormat = "2006-01-02T15-04-05.000000000"

// FileConfig holds configuration for file handler
type FileConfig struct {
	// Filename is the path to the log file
	Filename string
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// MaxSize is the size in bytes that triggers rotation (0 = no size rotation)
	MaxSize int64
	// RotateInterval is the interval for time-based rotation (0 = no interval rotation)
	RotateInterval time.Duration
	// MaxBackups is the maximum number of rotated files to retain (0 = keep all)
	MaxBackups int
	// Async enables asynchronous logging (default: false)
	Async bool
	// AsyncConfig configures the queue when Async is set
	AsyncConfig handler.AsyncConfig
}

// FileHandler writes entries to a file
type FileHandler struct {
	filename        string
	file            *os.File
	bufWriter       *bufio.Writer
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	mu              sync.Mutex
	buf             bytes.Buffer
	maxSize         int64
	rotateInterval  time.Duration
	maxBackups      int
	currentSize     int64
	lastRotateTime  time.Time
	stats           *handler.Stats
	closed          bool
}

// NewFileHandler opens (or creates) the file and returns a *FileHandler,
// or an *handler.AsyncHandler wrapping one when Async is set.
func NewFileHandler(cfg FileConfig) (handler.Handler, error) {
	if cfg.Filename == "" {
		return nil, ErrNoFilename
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	file, err := openLogFile(cfg.Filename)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("stat log file: %w", err)
	}

	h := &FileHandler{
		filename:       cfg.Filename,
		file:           file,
		bufWriter:      bufio.NewWriterSize(file, 4096),
		formatter:      cfg.Formatter,
		maxSize:        cfg.MaxSize,
		rotateInterval: cfg.RotateInterval,
		maxBackups:     cfg.MaxBackups,
		currentSize:    info.Size(),
		lastRotateTime: time.Now(),
		stats:          handler.NewStats(),
	}
	h.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)

	if cfg.Async {
		return handler.NewAsyncHandler(h, cfg.AsyncConfig), nil
	}
	return h, nil
}

func openLogFile(name string) (*os.File, error) {
	file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}

// Handle formats and writes an entry, rotating first when needed
func (h *FileHandler) Handle(entry *core.Entry) error {
	var data []byte
	if h.bufferFormatter == nil {
		var err error
		if data, err = h.formatter.Format(entry); err != nil {
			h.stats.IncrementFailed()
			return err
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return handler.ErrClosed
	}
	if err := h.rotateIfNeeded(); err != nil {
		h.stats.IncrementFailed()
		return err
	}

	if h.bufferFormatter != nil {
		h.buf.Reset()
		h.bufferFormatter.FormatEntry(entry, &h.buf)
		data = h.buf.Bytes()
	}

	n, err := h.bufWriter.Write(data)
	h.currentSize += int64(n)
	h.stats.Record(err)
	return err
}

// rotateIfNeeded checks and performs rotation if needed
func (h *FileHandler) rotateIfNeeded() error {
	needRotate := false

	// Check size-based rotation
	if h.maxSize > 0 && h.currentSize >= h.maxSize {
		needRotate = true
	}

	// Check interval-based rotation
	if h.rotateInterval > 0 && time.Since(h.lastRotateTime) >= h.rotateInterval {
		needRotate = true
	}

	if !needRotate {
		return nil
	}

	return h.rotate()
}

// rotate performs the actual file rotation
func (h *FileHandler) rotate() error {
	// Flush buffered writer and close current file
	if err := h.bufWriter.Flush(); err != nil {
		return err
	}
	if err := h.file.Close(); err != nil {
		return err
	}

	rotatedName := h.filename + "." + time.Now().Format(backupTimeFormat)
	renameErr := os.Rename(h.filename, rotatedName)

	// Reopen the original name whether or not the rename worked
	file, err := openLogFile(h.filename)
	if err != nil {
		if renameErr != nil {
			return fmt.Errorf("rotation failed: %w, reopen failed: %w", renameErr, err)
		}
		return err
	}

	h.file = file
	h.bufWriter.Reset(file)
	h.lastRotateTime = time.Now()

	if renameErr != nil {
		return fmt.Errorf("rotate log file: %w", renameErr)
	}

	h.currentSize = 0

	// Clean up old backups if needed
	if h.maxBackups > 0 {
		h.cleanupOldBackups()
	}

	return nil
}

// backups returns the rotated files of this handler, oldest first. The
// timestamp suffix sorts chronologically.
func (h *FileHandler) backups() []string {
	dir := filepath.Dir(h.filename)
	base := filepath.Base(h.filename)

	matches, err := filepath.Glob(filepath.Join(dir, base+".*"))
	if err != nil {
		return nil
	}

	var backups []string
	for _, match := range matches {
		if strings.HasPrefix(filepath.Base(match), base+".") {
			backups = append(backups, match)
		}
	}
	sort.Strings(backups)
	return backups
}

// cleanupOldBackups removes old backup files based on MaxBackups
func (h *FileHandler) cleanupOldBackups() {
	backups := h.backups()
	if len(backups) <= h.maxBackups {
		return
	}
	for _, file := range backups[:len(backups)-h.maxBackups] {
		if err := os.Remove(file); err != nil {
			return
		}
	}
}

// Flush writes buffered entries to the file
func (h *FileHandler) Flush() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return handler.ErrClosed
	}
	return h.bufWriter.Flush()
}

// Stats returns a snapshot of the current statistics
func (h *FileHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close flushes, syncs and closes the file.
func (h *FileHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true

	if err := h.bufWriter.Flush(); err != nil {
		_ = h.file.Close()
		return err
	}
	if err := h.file.Sync(); err != nil {
		_ = h.file.Close()
		return err
	}
	return h.file.Close()
}
