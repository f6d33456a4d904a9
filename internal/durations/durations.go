// Package durations derives time.Duration values from loosely-typed
// duration descriptors: raw millisecond counts, Go duration strings, or
// structured component maps and structs.
package durations

import (
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Descriptor is the structured form of a duration. Any subset of fields may
// be set; the resolved duration is the sum of all components.
type Descriptor struct {
	Days         float64 `mapstructure:"days"`
	Hours        float64 `mapstructure:"hours"`
	Minutes      float64 `mapstructure:"minutes"`
	Seconds      float64 `mapstructure:"seconds"`
	Milliseconds float64 `mapstructure:"milliseconds"`
}

// Duration resolves the descriptor to a time.Duration.
func (d Descriptor) Duration() time.Duration {
	total := d.Days*24*float64(time.Hour) +
		d.Hours*float64(time.Hour) +
		d.Minutes*float64(time.Minute) +
		d.Seconds*float64(time.Second) +
		d.Milliseconds*float64(time.Millisecond)
	return time.Duration(total)
}

// Parse derives a duration from v. Accepted forms: time.Duration, integer
// and float millisecond counts, strings in Go duration syntax or bare
// numeric milliseconds, and structured descriptors (Descriptor values, maps
// or structs carrying days/hours/minutes/seconds/milliseconds fields).
// ok is false when v has no duration interpretation; Parse never panics.
func Parse(v any) (d time.Duration, ok bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case time.Duration:
		return t, true
	case Descriptor:
		return t.Duration(), true
	case int:
		return time.Duration(t) * time.Millisecond, true
	case int8:
		return time.Duration(t) * time.Millisecond, true
	case int16:
		return time.Duration(t) * time.Millisecond, true
	case int32:
		return time.Duration(t) * time.Millisecond, true
	case int64:
		return time.Duration(t) * time.Millisecond, true
	case uint:
		return time.Duration(t) * time.Millisecond, true
	case uint8:
		return time.Duration(t) * time.Millisecond, true
	case uint16:
		return time.Duration(t) * time.Millisecond, true
	case uint32:
		return time.Duration(t) * time.Millisecond, true
	case uint64:
		return time.Duration(t) * time.Millisecond, true
	case float32:
		return time.Duration(float64(t) * float64(time.Millisecond)), true
	case float64:
		return time.Duration(t * float64(time.Millisecond)), true
	case string:
		return parseString(t)
	}
	return parseStructured(v)
}

func parseString(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d, true
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(n * float64(time.Millisecond)), true
	}
	return 0, false
}

// parseStructured decodes maps and structs into a Descriptor. A value that
// decodes but sets no component is not a duration descriptor.
func parseStructured(v any) (time.Duration, bool) {
	var desc Descriptor
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &desc,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return 0, false
	}
	if err := dec.Decode(v); err != nil {
		return 0, false
	}
	if desc == (Descriptor{}) {
		return 0, false
	}
	return desc.Duration(), true
}
