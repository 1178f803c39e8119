// Package timeparse converts the timestamp strings the browser sends into
// epoch milliseconds.
//
// Clients send ISO-8601 with varying precision: a full RFC 3339 stamp, a
// naive date-time, a bare date, any of them with or without a trailing "Z".
// Naive values are treated as UTC.
package timeparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Millis parses s into epoch milliseconds.
func Millis(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty timestamp")
	}

	trimmed := strings.TrimSuffix(s, "Z")
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli(), nil
		}
		if trimmed != s {
			if t, err := time.Parse(layout, trimmed); err == nil {
				return t.UnixMilli(), nil
			}
		}
	}
	return 0, fmt.Errorf("unparseable timestamp %q", s)
}

// Numeric reports whether s is already a numeric timestamp and returns its
// value in milliseconds. Fractional input is truncated.
func Numeric(s string) (int64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return int64(f), true
}
