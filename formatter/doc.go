// Package formatter defines how log entries are serialized into bytes.
//
// It exposes Formatter, which returns a []byte, and BufferFormatter, which
// appends into a caller-owned bytes.Buffer. Handlers check for
// BufferFormatter at construction time and prefer it, formatting into a
// buffer they own under their write lock.
//
// Entries carry no timestamp; formatters stamp the time when they format,
// using Config.Now (time.Now by default). Values are written in sorted key
// order so output is stable across runs.
//
// TextFormatter writes one line per entry:
//
//	2026-01-15T12:00:00Z [INFO] resolver.cache: miss level=1 qname=example.com.
//
// JSONFormatter writes one object per line with the merged context nested
// under "values". Both use a pooled bytes.Buffer internally; buffers larger
// than 64 KiB are not returned to the pool.
package formatter
