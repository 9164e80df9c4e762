package handler

import (
	"sync/atomic"

	"github.com/philipp01105/logtree/core"
)

// OverflowPolicy defines how to handle full async queues
type OverflowPolicy int

const (
	// DropNewest drops the newest log entry when queue is full
	DropNewest OverflowPolicy = iota
	// DropOldest drops the oldest log entry when queue is full
	DropOldest
	// Block blocks the caller until space is available (with timeout)
	Block
)

// String returns the string representation of the policy
func (p OverflowPolicy) String() string {
	switch p {
	case DropNewest:
		return "DropNewest"
	case DropOldest:
		return "DropOldest"
	case Block:
		return "Block"
	default:
		return "Unknown"
	}
}

// ParseOverflowPolicy converts a name as returned by String to a policy
func ParseOverflowPolicy(s string) (OverflowPolicy, bool) {
	switch s {
	case "DropNewest", "drop_newest":
		return DropNewest, true
	case "DropOldest", "drop_oldest":
		return DropOldest, true
	case "Block", "block":
		return Block, true
	default:
		return DropNewest, false
	}
}

// Stats tracks handler statistics. Info and error entries are counted
// separately so that dropped errors stand out.
type Stats struct {
	droppedInfo  atomic.Uint64
	droppedError atomic.Uint64
	blocked      atomic.Uint64
	processed    atomic.Uint64
	failed       atomic.Uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// IncrementDropped increments the dropped counter for the entry's class
func (s *Stats) IncrementDropped(entry *core.Entry) {
	if entry.HasError {
		s.droppedError.Add(1)
		return
	}
	s.droppedInfo.Add(1)
}

// IncrementBlocked increments the blocked counter
func (s *Stats) IncrementBlocked() {
	s.blocked.Add(1)
}

// IncrementProcessed increments the processed counter
func (s *Stats) IncrementProcessed() {
	s.processed.Add(1)
}

// IncrementFailed increments the counter of entries whose write failed
func (s *Stats) IncrementFailed() {
	s.failed.Add(1)
}

// Record counts the outcome of one write
func (s *Stats) Record(err error) {
	if err != nil {
		s.IncrementFailed()
		return
	}
	s.IncrementProcessed()
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	s.droppedInfo.Store(0)
	s.droppedError.Store(0)
	s.blocked.Store(0)
	s.processed.Store(0)
	s.failed.Store(0)
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	DroppedInfo    uint64
	DroppedError   uint64
	BlockedTotal   uint64
	ProcessedTotal uint64
	FailedTotal    uint64
}

// DroppedTotal returns the dropped count across both classes
func (s Snapshot) DroppedTotal() uint64 {
	return s.DroppedInfo + s.DroppedError
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	return Snapshot{
		DroppedInfo:    s.droppedInfo.Load(),
		DroppedError:   s.droppedError.Load(),
		BlockedTotal:   s.blocked.Load(),
		ProcessedTotal: s.processed.Load(),
		FailedTotal:    s.failed.Load(),
	}
}
