package domain

import (
	"fmt"
	"time"
)

const hoursPerDay = 24

// DateLayout is the calendar-day format accepted by the date filters.
const DateLayout = "2006-01-02"

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// DaysBetween returns (to - from) in fractional days.
func DaysBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / hoursPerDay
}

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	DateLayout,
}

// ParseDateTime accepts RFC3339, a zone-less date-time, or a bare date.
// Zone-less values are read in loc.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}
