package pet

import (
	"fmt"
	"time"
)

// TimestampLayout is the wall-clock format used for spawn dates and history
// events. It carries no zone; timestamps are read back in local time.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParseTimestamp accepts zone-less timestamps (with or without fractional
// seconds) as well as RFC 3339.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
