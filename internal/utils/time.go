package utils

import (
	"strings"
	"time"
)

const (
	layoutDate   = "2006-01-02"
	layoutIssued = "2006-01-02 15:04"
)

// ParseDate parses a YYYY-MM-DD travel date as a UTC calendar day.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(layoutDate, strings.TrimSpace(s))
}

// FormatDate renders a travel date, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layoutDate)
}

// FormatIssued is the timestamp printed on generated documents.
func FormatIssued(t time.Time) string {
	return t.Format(layoutIssued)
}
