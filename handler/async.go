package handler

import (
	"errors"
	"sync"
	"time"

	"github.com/philipp01105/logtree/core"
)

// ErrClosed is returned by handlers used after Close
var ErrClosed = errors.New("handler is closed")

// AsyncConfig holds configuration for AsyncHandler
type AsyncConfig struct {
	// BufferSize is the size of the queue (default: 1000)
	BufferSize int
	// InfoPolicy applies to info entries when the queue is full (default: DropNewest)
	InfoPolicy OverflowPolicy
	// ErrorPolicy applies to error entries when the queue is full (default: Block)
	ErrorPolicy OverflowPolicy
	// BlockTimeout is the timeout for the Block policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining the queue on Close (default: 5s)
	DrainTimeout time.Duration
}

// DefaultAsyncConfig returns the configuration used for zero fields: low
// priority entries never stall the caller, errors are never silently
// dropped.
func DefaultAsyncConfig() AsyncConfig {
	return AsyncConfig{
		BufferSize:   1000,
		InfoPolicy:   DropNewest,
		ErrorPolicy:  Block,
		BlockTimeout: 100 * time.Millisecond,
		DrainTimeout: 5 * time.Second,
	}
}

// AsyncHandler queues entries and hands them to a wrapped handler from a
// single background goroutine, so the wrapped handler never sees
// concurrent calls.
type AsyncHandler struct {
	next      Handler
	queue     chan *core.Entry
	cfg       AsyncConfig
	stats     *Stats
	closed    chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
	// writeMu serializes fallback writes with the consumer goroutine
	writeMu sync.Mutex
}

// NewAsyncHandler wraps next. A zero AsyncConfig selects
// DefaultAsyncConfig; otherwise only sizes and timeouts fall back to their
// defaults, since DropNewest is the zero policy.
func NewAsyncHandler(next Handler, cfg AsyncConfig) *AsyncHandler {
	def := DefaultAsyncConfig()
	if cfg == (AsyncConfig{}) {
		cfg = def
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = def.BufferSize
	}
	if cfg.BlockTimeout <= 0 {
		cfg.BlockTimeout = def.BlockTimeout
	}
	if cfg.DrainTimeout <= 0 {
		cfg.DrainTimeout = def.DrainTimeout
	}

	h := &AsyncHandler{
		next:   next,
		queue:  make(chan *core.Entry, cfg.BufferSize),
		cfg:    cfg,
		stats:  NewStats(),
		closed: make(chan struct{}),
	}

	h.wg.Add(1)
	go h.process()

	return h
}

// Handle enqueues the entry, applying the overflow policy of its class
// when the queue is full.
func (h *AsyncHandler) Handle(entry *core.Entry) error {
	select {
	case <-h.closed:
		return ErrClosed
	default:
	}

	policy := h.cfg.InfoPolicy
	if entry.HasError {
		policy = h.cfg.ErrorPolicy
	}

	// Fast path: room in the queue
	select {
	case h.queue <- entry:
		return nil
	default:
	}

	switch policy {
	case Block:
		timer := time.NewTimer(h.cfg.BlockTimeout)
		defer timer.Stop()

		select {
		case h.queue <- entry:
			return nil
		case <-timer.C:
			// Timeout - fall back to synchronous write
			h.stats.IncrementBlocked()
			return h.write(entry)
		case <-h.closed:
			return h.write(entry)
		}

	case DropOldest:
		select {
		case old := <-h.queue:
			h.stats.IncrementDropped(old)
		default:
		}
		select {
		case h.queue <- entry:
		default:
			// Still full, drop this one
			h.stats.IncrementDropped(entry)
		}
		return nil

	default:
		h.stats.IncrementDropped(entry)
		return nil
	}
}

func (h *AsyncHandler) write(entry *core.Entry) error {
	h.writeMu.Lock()
	err := h.next.Handle(entry)
	h.writeMu.Unlock()
	h.stats.Record(err)
	return err
}

// process drains the queue until Close
func (h *AsyncHandler) process() {
	defer h.wg.Done()

	for {
		select {
		case entry := <-h.queue:
			_ = h.write(entry)
		case <-h.closed:
			h.drain()
			return
		}
	}
}

// drain writes what is left in the queue, bounded by DrainTimeout
func (h *AsyncHandler) drain() {
	deadline := time.NewTimer(h.cfg.DrainTimeout)
	defer deadline.Stop()

	for {
		select {
		case entry := <-h.queue:
			_ = h.write(entry)
		case <-deadline.C:
			return
		default:
			return
		}
	}
}

// Stats returns a snapshot of the current statistics
func (h *AsyncHandler) Stats() Snapshot {
	return h.stats.GetSnapshot()
}

// Close stops accepting entries, drains the queue and closes the wrapped
// handler.
func (h *AsyncHandler) Close() error {
	var err error
	h.closeOnce.Do(func() {
		close(h.closed)
		h.wg.Wait()
		err = h.next.Close()
	})
	return err
}
