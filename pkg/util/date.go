package util

import (
	"strconv"
	"time"
)

// compactLayout is the timestamp shape used by the Alpha Vantage news feed.
const compactLayout = "20060102T150405"

// ParseTime tries RFC3339, RFC3339Nano, the compact provider layout and unix
// seconds or milliseconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, time.RFC3339Nano, compactLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return FromUnixAuto(ts), true
	}
	return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
	if t, ok := ParseTime(s); ok {
		return t
	}
	return def
}

// FromUnixAuto converts seconds, milliseconds or nanoseconds since epoch.
func FromUnixAuto(ts int64) time.Time {
	switch {
	case ts > 1e17:
		return time.Unix(0, ts).UTC()
	case ts > 1e11:
		return time.UnixMilli(ts).UTC()
	default:
		return time.Unix(ts, 0).UTC()
	}
}
