package utils

import (
	"time"
)

// DateLayout is the YYYY-MM-DD format used in paths and query params.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string in the given location.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// UserLocation resolves an IANA timezone name, falling back to UTC on
// empty or unknown names so a bad setting never breaks a sweep.
func UserLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
