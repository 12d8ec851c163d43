package action

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// HeaderValue is either a literal string or a producer evaluated each time
// the action is applied.
type HeaderValue struct {
	literal string
	compute func() string
	label   string
}

func Literal(s string) HeaderValue {
	return HeaderValue{literal: s}
}

// Computed wraps fn; a nil fn behaves like an empty literal.
func Computed(fn func() string) HeaderValue {
	return HeaderValue{compute: fn, label: "<computed>"}
}

func (v HeaderValue) IsComputed() bool {
	return v.compute != nil
}

// Resolve returns the value to store.
func (v HeaderValue) Resolve() string {
	if v.compute != nil {
		return v.compute()
	}
	return v.literal
}

func (v HeaderValue) String() string {
	if v.compute != nil {
		return v.label
	}
	return v.literal
}

// Producers for configuration-driven header values.
var (
	// Timestamp yields unix milliseconds at apply time.
	Timestamp = HeaderValue{
		compute: func() string { return strconv.FormatInt(time.Now().UnixMilli(), 10) },
		label:   "$timestamp",
	}
	// UUID yields a fresh random UUID.
	UUID = HeaderValue{
		compute: func() string { return uuid.NewString() },
		label:   "$uuid",
	}
)

// Env reads the environment variable at apply time.
func Env(name string) HeaderValue {
	return HeaderValue{
		compute: func() string { return os.Getenv(name) },
		label:   "env:" + name,
	}
}

// ParseHeaderValue turns the configuration spelling of a header value into a
// HeaderValue: "$timestamp", "$uuid", "env:NAME", "$$text" for a literal
// "$text", anything else literal.
func ParseHeaderValue(s string) HeaderValue {
	switch {
	case s == "$timestamp":
		return Timestamp
	case s == "$uuid":
		return UUID
	case strings.HasPrefix(s, "env:") && len(s) > len("env:"):
		return Env(s[len("env:"):])
	case strings.HasPrefix(s, "$$"):
		return Literal(s[1:])
	default:
		return Literal(s)
	}
}
