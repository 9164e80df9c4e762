package formatter

import (
	"bytes"
	"strconv"
	"time"

	"github.com/philipp01105/logtree/core"
)

// JSONFormatter formats log entries as JSON
type JSONFormatter struct {
	Config
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(cfg Config) *JSONFormatter {
	cfg.applyDefaults(time.RFC3339Nano)
	return &JSONFormatter{Config: cfg}
}

// Format formats an entry as JSON
func (f *JSONFormatter) Format(entry *core.Entry) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.FormatEntry(entry, buf)
	return copyBuffer(buf), nil
}

// FormatEntry formats an entry as JSON into the given buffer (implements BufferFormatter).
// The object is built by hand to avoid reflection on the hot path.
func (f *JSONFormatter) FormatEntry(entry *core.Entry, buf *bytes.Buffer) {
	buf.WriteByte('{')

	if !f.DisableTimestamp {
		buf.WriteString(`"time":"`)
		buf.Write(f.Now().AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))
		buf.WriteString(`",`)
	}

	buf.WriteString(`"severity":"`)
	buf.WriteString(severity(entry))
	buf.WriteString(`","level":`)
	buf.Write(strconv.AppendUint(buf.AvailableBuffer(), uint64(entry.Level), 10))

	if entry.Name != "" {
		buf.WriteString(`,"name":"`)
		appendJSONString(buf, entry.Name)
		buf.WriteByte('"')
	}

	buf.WriteString(`,"message":"`)
	appendJSONString(buf, entry.Message)
	buf.WriteByte('"')

	if entry.HasError {
		buf.WriteString(`,"error":"`)
		appendJSONString(buf, entry.Error)
		buf.WriteByte('"')
	}

	if len(entry.Values) > 0 {
		buf.WriteString(`,"values":{`)
		for i, k := range entry.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('"')
			appendJSONString(buf, k)
			buf.WriteString(`":"`)
			appendJSONString(buf, entry.Values[k])
			buf.WriteByte('"')
		}
		buf.WriteByte('}')
	}

	buf.WriteString("}\n")
}

// appendJSONString writes a JSON-escaped string (without surrounding quotes) to the buffer
func appendJSONString(buf *bytes.Buffer, s string) {
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}

		// Flush unescaped prefix
		if start < i {
			buf.WriteString(s[start:i])
		}

		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexChars[c>>4])
			buf.WriteByte(hexChars[c&0x0f])
		}
		start = i + 1
	}

	// Flush remaining
	if start < len(s) {
		buf.WriteString(s[start:])
	}
}

var hexChars = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}
