package health

import (
	"strings"
	"time"
)

// TimestampLayout is the single timezone-naive ISO-8601 layout used for
// every stored and loaded timestamp. Fractional seconds are accepted on parse.
const TimestampLayout = "2006-01-02T15:04:05"

// ParseTimestamp parses a naive timestamp. The returned time carries the
// wall clock in UTC so that bucket keys never shift with the host timezone.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(TimestampLayout, strings.TrimSpace(s))
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// Naive drops the location of t while keeping its wall clock.
func Naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// Cutoff returns the start of a lookback window of days ending at now.
func Cutoff(now time.Time, days int) time.Time {
	return Naive(now).AddDate(0, 0, -days)
}

// ClampScore limits a 0-10 score.
func ClampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
