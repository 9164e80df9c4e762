package formatter

import (
	"bytes"
	"sync"
	"time"

	"github.com/philipp01105/logtree/core"
)

// Formatter defines the interface for log formatters
type Formatter interface {
	// Format formats a log entry into bytes
	Format(entry *core.Entry) ([]byte, error)
}

// BufferFormatter is an optional interface that formatters can implement
// to format directly into a caller-provided buffer, avoiding internal
// buffer pool overhead.
type BufferFormatter interface {
	// FormatEntry formats a log entry into the given buffer.
	FormatEntry(entry *core.Entry, buf *bytes.Buffer)
}

// Config holds common formatter configuration
type Config struct {
	// TimestampFormat specifies the time format (empty for RFC3339)
	TimestampFormat string
	// DisableTimestamp omits the time from the output
	DisableTimestamp bool
	// Now returns the time written for each entry (default: time.Now)
	Now func() time.Time
}

func (c *Config) applyDefaults(timestampFormat string) {
	if c.TimestampFormat == "" {
		c.TimestampFormat = timestampFormat
	}
	if c.Now == nil {
		c.Now = time.Now
	}
}

// severity is the label of an entry's class
func severity(entry *core.Entry) string {
	if entry.HasError {
		return "ERROR"
	}
	return "INFO"
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}

// copyBuffer detaches the formatted bytes from a pooled buffer
func copyBuffer(buf *bytes.Buffer) []byte {
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result
}
