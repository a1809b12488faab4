package habit

import (
	"testing"
	"time"
)

func clockTime(hh, mm int) time.Time {
	return time.Date(2026, 8, 26, hh, mm, 0, 0, time.UTC)
}

func TestWindowContains(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
		at         time.Time
		want       bool
	}{
		{"inside plain window", "08:00", "20:00", clockTime(12, 0), true},
		{"before plain window", "08:00", "20:00", clockTime(7, 59), false},
		{"end is exclusive", "08:00", "20:00", clockTime(20, 0), false},
		{"wrapping late evening", "22:00", "06:00", clockTime(23, 0), true},
		{"wrapping early morning", "22:00", "06:00", clockTime(5, 30), true},
		{"wrapping midday outside", "22:00", "06:00", clockTime(12, 0), false},
		{"open defaults", "", "", clockTime(0, 0), true},
		{"end of day sentinel", "00:00", "24:00", clockTime(23, 59), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, err := ParseWindow(tc.start, tc.end)
			if err != nil {
				t.Fatalf("ParseWindow(%q, %q) failed: %v", tc.start, tc.end, err)
			}
			if got := w.Contains(tc.at); got != tc.want {
				t.Errorf("Contains(%s) = %v, want %v", tc.at.Format("15:04"), got, tc.want)
			}
		})
	}
}

func TestParseWindowRejectsBadBounds(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
	}{
		{"garbage start", "noon", "20:00"},
		{"hour out of range", "25:00", ""},
		{"minute out of range", "10:75", ""},
		{"24:00 as start", "24:00", ""},
		{"24:30 as end", "", "24:30"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseWindow(tc.start, tc.end); err == nil {
				t.Errorf("ParseWindow(%q, %q) accepted invalid bounds", tc.start, tc.end)
			}
		})
	}
}
