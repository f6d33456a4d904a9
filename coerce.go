package moodlews

import (
	"strconv"
	"strings"
	"time"

	"github.com/CuAnnan/moodle-ws-client/internal/durations"
)

// CoerceFunc normalizes a raw argument value into its canonical form.
// Coercion is best effort and never fails: values it cannot interpret are
// returned unchanged for the validator to reject.
type CoerceFunc func(any) any

func coerceUpper(v any) any {
	if s, ok := v.(string); ok {
		return strings.ToUpper(s)
	}
	return v
}

func coerceLower(v any) any {
	if s, ok := v.(string); ok {
		return strings.ToLower(s)
	}
	return v
}

// coerceTrailingSlash appends the path separator the API URL derivation
// relies on.
func coerceTrailingSlash(v any) any {
	s, ok := v.(string)
	if !ok || s == "" {
		return v
	}
	if strings.HasSuffix(s, "/") {
		return s
	}
	return s + "/"
}

// coerceMilliseconds resolves a duration descriptor to a whole-millisecond
// count. Values without a positive duration interpretation fall through to
// plain integer coercion, so the positivity check reports them.
func coerceMilliseconds(v any) any {
	if d, ok := durations.Parse(v); ok && d > 0 {
		return int(d / time.Millisecond)
	}
	return coerceInt(v)
}

func coerceInt(v any) any {
	switch t := v.(type) {
	case int:
		return t
	case int8:
		return int(t)
	case int16:
		return int(t)
	case int32:
		return int(t)
	case int64:
		return int(t)
	case uint:
		return int(t)
	case uint8:
		return int(t)
	case uint16:
		return int(t)
	case uint32:
		return int(t)
	case uint64:
		return int(t)
	case float32:
		if float32(int(t)) == t {
			return int(t)
		}
	case float64:
		if float64(int(t)) == t {
			return int(t)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
	}
	return v
}
