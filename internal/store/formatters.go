package store

import (
	"time"
)

// FormatTime formats a time.Time as an RFC3339 UTC string for storage.
// UTC keeps lexical order equal to chronological order, which OrderBy relies on.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatTimePtr formats a *time.Time, returning nil if the pointer is nil
func FormatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return FormatTime(*t)
}

// ParseTime parses an RFC3339 formatted time string read from the store
func ParseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
