package helper

import (
	"time"

	"github.com/dustin/go-humanize"
)

// DateLayout is the short date used in listings.
const DateLayout = "2 Jan 2006"

// FormatDate renders t in local time, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(DateLayout)
}

// TimeAgo describes t relative to now, e.g. "3 minutes ago".
func TimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	if d := now.Sub(t); d >= 0 && d < time.Minute {
		return "just now"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// Bytes formats a byte count, e.g. "5.0 MiB".
func Bytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}
