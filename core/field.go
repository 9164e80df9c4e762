package core

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"
	"time"
)

// Loggable is implemented by values that can be attached to a logger as
// context. LogString must be deterministic and free of side effects.
type Loggable interface {
	LogString() string
}

// Field is a key and its Loggable value
type Field struct {
	Key   string
	Value Loggable
}

// StringValue returns the log string of the field's value
func (f Field) StringValue() string {
	if f.Value == nil {
		return ""
	}
	return f.Value.LogString()
}

// Text adapts a plain string
type Text string

func (t Text) LogString() string { return string(t) }

// Int adapts a signed integer
type Int int64

func (i Int) LogString() string { return strconv.FormatInt(int64(i), 10) }

// Uint adapts an unsigned integer
type Uint uint64

func (u Uint) LogString() string { return strconv.FormatUint(uint64(u), 10) }

// Float adapts a float64
type Float float64

func (f Float) LogString() string { return strconv.FormatFloat(float64(f), 'f', -1, 64) }

// Bool adapts a bool
type Bool bool

func (b Bool) LogString() string { return strconv.FormatBool(bool(b)) }

// Duration adapts a time.Duration, rendered as "1.5s"
type Duration time.Duration

func (d Duration) LogString() string { return time.Duration(d).String() }

// Time adapts a time.Time, rendered as RFC3339 with nanoseconds
type Time time.Time

func (t Time) LogString() string { return time.Time(t).Format(time.RFC3339Nano) }

// Address adapts an IP address with port, rendered "192.0.2.1:53" or
// "[2001:db8::1]:53".
type Address netip.AddrPort

func (a Address) LogString() string { return netip.AddrPort(a).String() }

// IP adapts an IP address without port
type IP netip.Addr

func (ip IP) LogString() string { return netip.Addr(ip).String() }

// DNSName adapts a domain name. The log form is absolute: a trailing dot is
// added when missing and the empty name renders as the root ".".
type DNSName string

func (n DNSName) LogString() string {
	s := string(n)
	if strings.HasSuffix(s, ".") {
		return s
	}
	return s + "."
}

// Err adapts an error; a nil error renders as "<nil>"
type Err struct{ Err error }

func (e Err) LogString() string {
	if e.Err == nil {
		return "<nil>"
	}
	return e.Err.Error()
}

// Stringer adapts any fmt.Stringer
type Stringer struct{ V fmt.Stringer }

func (s Stringer) LogString() string {
	if s.V == nil {
		return "<nil>"
	}
	return s.V.String()
}

// ValueOf returns a Loggable for v. Values that already implement Loggable
// are returned unchanged; common types get their dedicated adapter and
// anything else is rendered with fmt.
func ValueOf(v any) Loggable {
	switch val := v.(type) {
	case nil:
		return Text("<nil>")
	case Loggable:
		return val
	case string:
		return Text(val)
	case int:
		return Int(val)
	case int8:
		return Int(val)
	case int16:
		return Int(val)
	case int32:
		return Int(val)
	case int64:
		return Int(val)
	case uint:
		return Uint(val)
	case uint8:
		return Uint(val)
	case uint16:
		return Uint(val)
	case uint32:
		return Uint(val)
	case uint64:
		return Uint(val)
	case float32:
		return Float(val)
	case float64:
		return Float(val)
	case bool:
		return Bool(val)
	case time.Duration:
		return Duration(val)
	case time.Time:
		return Time(val)
	case netip.AddrPort:
		return Address(val)
	case netip.Addr:
		return IP(val)
	case error:
		return Err{Err: val}
	case fmt.Stringer:
		return Stringer{V: val}
	default:
		return Text(fmt.Sprint(val))
	}
}

// noValue is rendered for dangling keys in key/value lists.
const noValue = "<no-value>"

// FieldsFromKV converts an alternating key/value list into fields. Keys that
// are not strings are rendered with fmt; a trailing key without a value
// gets "<no-value>".
func FieldsFromKV(kv []any) []Field {
	if len(kv) == 0 {
		return nil
	}
	fields := make([]Field, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		if i+1 >= len(kv) {
			fields = append(fields, Field{Key: key, Value: Text(noValue)})
			break
		}
		fields = append(fields, Field{Key: key, Value: ValueOf(kv[i+1])})
	}
	return fields
}
