package logger

import (
	"fmt"
	"net/netip"
	"time"

	"github.com/philipp01105/logtree/core"
)

// Field helper functions for convenience

// String creates a string field
func String(key, val string) core.Field {
	return core.Field{Key: key, Value: core.Text(val)}
}

// Int creates an int field
func Int(key string, val int) core.Field {
	return core.Field{Key: key, Value: core.Int(val)}
}

// Int64 creates an int64 field
func Int64(key string, val int64) core.Field {
	return core.Field{Key: key, Value: core.Int(val)}
}

// Uint64 creates a uint64 field
func Uint64(key string, val uint64) core.Field {
	return core.Field{Key: key, Value: core.Uint(val)}
}

// Float64 creates a float64 field
func Float64(key string, val float64) core.Field {
	return core.Field{Key: key, Value: core.Float(val)}
}

// Bool creates a bool field
func Bool(key string, val bool) core.Field {
	return core.Field{Key: key, Value: core.Bool(val)}
}

// Time creates a time field
func Time(key string, val time.Time) core.Field {
	return core.Field{Key: key, Value: core.Time(val)}
}

// Duration creates a duration field
func Duration(key string, val time.Duration) core.Field {
	return core.Field{Key: key, Value: core.Duration(val)}
}

// Addr creates a field for an address with port
func Addr(key string, val netip.AddrPort) core.Field {
	return core.Field{Key: key, Value: core.Address(val)}
}

// IP creates a field for an address without port
func IP(key string, val netip.Addr) core.Field {
	return core.Field{Key: key, Value: core.IP(val)}
}

// DNSName creates a field for a domain name
func DNSName(key, name string) core.Field {
	return core.Field{Key: key, Value: core.DNSName(name)}
}

// Err creates an error field
func Err(err error) core.Field {
	return core.Field{Key: "error", Value: core.Err{Err: err}}
}

// Stringer creates a field from a fmt.Stringer
func Stringer(key string, val fmt.Stringer) core.Field {
	return core.Field{Key: key, Value: core.Stringer{V: val}}
}

// Any creates a field with any value
func Any(key string, val any) core.Field {
	return core.Field{Key: key, Value: core.ValueOf(val)}
}
