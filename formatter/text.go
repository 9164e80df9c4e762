package formatter

import (
	"bytes"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/philipp01105/logtree/core"
)

// TextFormatter formats log entries as human-readable text
type TextFormatter struct {
	Config
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(cfg Config) *TextFormatter {
	cfg.applyDefaults(time.RFC3339)
	return &TextFormatter{Config: cfg}
}

// Format formats an entry as text
func (f *TextFormatter) Format(entry *core.Entry) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.FormatEntry(entry, buf)
	return copyBuffer(buf), nil
}

// FormatEntry formats an entry as text into the given buffer (implements BufferFormatter).
func (f *TextFormatter) FormatEntry(entry *core.Entry, buf *bytes.Buffer) {
	if !f.DisableTimestamp {
		buf.Write(f.Now().AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))
		buf.WriteByte(' ')
	}

	if entry.HasError {
		buf.WriteString("[ERROR] ")
	} else {
		buf.WriteString("[INFO] ")
	}

	if entry.Name != "" {
		buf.WriteString(entry.Name)
		buf.WriteString(": ")
	}

	buf.WriteString(entry.Message)

	buf.WriteString(" level=")
	buf.Write(strconv.AppendUint(buf.AvailableBuffer(), uint64(entry.Level), 10))

	if entry.HasError {
		buf.WriteString(" error=")
		appendTextValue(buf, entry.Error)
	}

	for _, k := range entry.Keys() {
		buf.WriteByte(' ')
		buf.WriteString(k)
		buf.WriteByte('=')
		appendTextValue(buf, entry.Values[k])
	}

	buf.WriteByte('\n')
}

// appendTextValue writes s bare when it is unambiguous and quoted otherwise
func appendTextValue(buf *bytes.Buffer, s string) {
	if needsQuoting(s) {
		buf.Write(strconv.AppendQuote(buf.AvailableBuffer(), s))
		return
	}
	buf.WriteString(s)
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= ' ' || c == '=' || c == '"' || c >= utf8.RuneSelf {
			return true
		}
	}
	return false
}
