package moodlews

import (
	"reflect"
	"testing"
	"time"
)

func TestCoerceUpper(t *testing.T) {
	tests := []struct {
		input any
		want  any
	}{
		{"get", "GET"},
		{"Post", "POST"},
		{"PUT", "PUT"},
		{"", ""},
		{42, 42},
		{nil, nil},
	}

	for _, test := range tests {
		if got := coerceUpper(test.input); !reflect.DeepEqual(got, test.want) {
			t.Errorf("coerceUpper(%v): expected %v, got %v", test.input, test.want, got)
		}
	}
}

func TestCoerceLower(t *testing.T) {
	tests := []struct {
		input any
		want  any
	}{
		{"CORE_Fn", "core_fn"},
		{"JSON", "json"},
		{true, true},
	}

	for _, test := range tests {
		if got := coerceLower(test.input); !reflect.DeepEqual(got, test.want) {
			t.Errorf("coerceLower(%v): expected %v, got %v", test.input, test.want, got)
		}
	}
}

func TestCoerceTrailingSlash(t *testing.T) {
	tests := []struct {
		input any
		want  any
	}{
		{"https://localhost", "https://localhost/"},
		{"https://localhost/", "https://localhost/"},
		{"https://moodle.example.edu/site", "https://moodle.example.edu/site/"},
		{"", ""},
		{99, 99},
	}

	for _, test := range tests {
		if got := coerceTrailingSlash(test.input); !reflect.DeepEqual(got, test.want) {
			t.Errorf("coerceTrailingSlash(%v): expected %v, got %v", test.input, test.want, got)
		}
	}
}

func TestCoerceMilliseconds(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  any
	}{
		{"raw millis", 5000, 5000},
		{"duration", time.Second, 1000},
		{"go syntax", "2s", 2000},
		{"bare numeric string", "1500", 1500},
		{"structured", map[string]any{"seconds": 1, "milliseconds": 500}, 1500},
		{"negative falls through to int", -5, -5},
		{"zero falls through to int", 0, 0},
		{"zero duration string falls through", "0s", "0s"},
		{"junk unchanged", "soon", "soon"},
		{"whole float", float64(250), 250},
	}

	for _, test := range tests {
		if got := coerceMilliseconds(test.input); !reflect.DeepEqual(got, test.want) {
			t.Errorf("%s: coerceMilliseconds(%v): expected %v (%T), got %v (%T)",
				test.name, test.input, test.want, test.want, got, got)
		}
	}
}

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		input any
		want  any
	}{
		{7, 7},
		{int64(7), 7},
		{uint16(7), 7},
		{float64(7), 7},
		{7.5, 7.5},
		{" 12 ", 12},
		{"twelve", "twelve"},
	}

	for _, test := range tests {
		if got := coerceInt(test.input); !reflect.DeepEqual(got, test.want) {
			t.Errorf("coerceInt(%v): expected %v (%T), got %v (%T)", test.input, test.want, test.want, got, got)
		}
	}
}
