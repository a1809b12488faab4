package utils

import (
	"testing"
	"time"
)

func TestUserLocationFallsBackToUTC(t *testing.T) {
	if loc := UserLocation(""); loc != time.UTC {
		t.Errorf("empty name resolved to %v, want UTC", loc)
	}
	if loc := UserLocation("Not/AZone"); loc != time.UTC {
		t.Errorf("unknown name resolved to %v, want UTC", loc)
	}
	if loc := UserLocation("Europe/Berlin"); loc.String() != "Europe/Berlin" {
		t.Errorf("resolved to %v, want Europe/Berlin", loc)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	if _, err := ParseDate("2026-08-26", time.UTC); err != nil {
		t.Errorf("valid date rejected: %v", err)
	}
	for _, bad := range []string{"26-08-2026", "2026/08/26", "yesterday", ""} {
		if _, err := ParseDate(bad, time.UTC); err == nil {
			t.Errorf("ParseDate(%q) accepted malformed input", bad)
		}
	}
}
