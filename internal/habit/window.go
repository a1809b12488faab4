package habit

import (
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

// Window is a daily time-of-day window. When end is before start the
// window wraps past midnight, e.g. 22:00-06:00 contains 23:00.
type Window struct {
	start int // minutes from midnight, inclusive
	end   int // minutes from midnight, exclusive; 1440 means end of day
}

// ParseWindow builds a window from "HH:MM" bounds. Empty bounds fall
// back to the open defaults "00:00" and "24:00"; "24:00" is only valid
// as an end-of-day sentinel.
func ParseWindow(start, end string) (Window, error) {
	startMin, err := parseClock(start, 0)
	if err != nil {
		return Window{}, fmt.Errorf("window start: %w", err)
	}
	if startMin == minutesPerDay {
		return Window{}, fmt.Errorf("window start: 24:00 is not a valid start")
	}
	endMin, err := parseClock(end, minutesPerDay)
	if err != nil {
		return Window{}, fmt.Errorf("window end: %w", err)
	}
	return Window{start: startMin, end: endMin}, nil
}

// Contains reports whether the time-of-day of t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	m := t.Hour()*60 + t.Minute()
	if w.start < w.end {
		return m >= w.start && m < w.end
	}
	// wrapping window, also covers the degenerate start == end case
	return m >= w.start || m < w.end
}

// parseClock parses "HH:MM" into minutes from midnight; an empty
// string yields def. "24:00" maps to 1440.
func parseClock(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	var hh, mm int
	if _, err := fmt.Sscanf(s, "%d:%d", &hh, &mm); err != nil {
		return 0, fmt.Errorf("malformed clock value %q", s)
	}
	if hh == 24 && mm == 0 {
		return minutesPerDay, nil
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return hh*60 + mm, nil
}
