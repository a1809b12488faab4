package habit

import (
	"testing"
	"time"

	"Habitual/internal/model"
)

var everyDay = model.Agenda{true, true, true, true, true, true, true}

// mustDate parses a YYYY-MM-DD in UTC or fails the test.
func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func TestCountStreak_ZeroWithoutSuccesses(t *testing.T) {
	today := mustDate(t, "2026-08-26") // Wednesday

	cases := []struct {
		name string
		days map[string]model.DayStatus
	}{
		{"no records", map[string]model.DayStatus{}},
		{"only fails", map[string]model.DayStatus{
			"2026-08-25": model.DayStatusFail,
			"2026-08-24": model.DayStatusFail,
		}},
		{"only breakdays", map[string]model.DayStatus{
			"2026-08-25": model.DayStatusBreakday,
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CountStreak(tc.days, everyDay, today); got != 0 {
				t.Errorf("CountStreak = %d, want 0", got)
			}
		})
	}
}

func TestCountStreak_CountsConsecutiveSuccesses(t *testing.T) {
	today := mustDate(t, "2026-08-26")
	days := map[string]model.DayStatus{
		"2026-08-26": model.DayStatusSuccess,
		"2026-08-25": model.DayStatusSuccess,
		"2026-08-24": model.DayStatusSuccess,
		"2026-08-23": model.DayStatusFail,
		"2026-08-22": model.DayStatusSuccess, // unreachable past the fail
	}

	if got := CountStreak(days, everyDay, today); got != 3 {
		t.Errorf("CountStreak = %d, want 3", got)
	}
}

func TestCountStreak_OpenTodayIsSkipped(t *testing.T) {
	today := mustDate(t, "2026-08-26")
	days := map[string]model.DayStatus{
		"2026-08-25": model.DayStatusSuccess,
		"2026-08-24": model.DayStatusSuccess,
	}

	// Today is expected but unrecorded; the walk starts at yesterday.
	if got := CountStreak(days, everyDay, today); got != 2 {
		t.Errorf("CountStreak with open today = %d, want 2", got)
	}

	days["2026-08-26"] = model.DayStatusFail
	if got := CountStreak(days, everyDay, today); got != 0 {
		t.Errorf("CountStreak after failing today = %d, want 0", got)
	}
}

func TestCountStreak_SkipsNonAgendaDays(t *testing.T) {
	// Weekdays only: 2026-08-22/23 are Saturday/Sunday.
	weekdays := model.Agenda{false, true, true, true, true, true, false}
	today := mustDate(t, "2026-08-26")
	days := map[string]model.DayStatus{
		"2026-08-26": model.DayStatusSuccess, // Wed
		"2026-08-25": model.DayStatusSuccess, // Tue
		"2026-08-24": model.DayStatusSuccess, // Mon
		"2026-08-23": model.DayStatusBreakday,
		"2026-08-22": model.DayStatusBreakday,
		"2026-08-21": model.DayStatusSuccess, // Fri
		"2026-08-20": model.DayStatusFail,    // Thu, terminates
	}

	if got := CountStreak(days, weekdays, today); got != 4 {
		t.Errorf("CountStreak = %d, want 4", got)
	}
}

func TestCountStreak_MissingExpectedDayTerminates(t *testing.T) {
	today := mustDate(t, "2026-08-26")
	days := map[string]model.DayStatus{
		"2026-08-26": model.DayStatusSuccess,
		"2026-08-25": model.DayStatusSuccess,
		// 2026-08-24 expected but absent
		"2026-08-23": model.DayStatusSuccess,
	}

	if got := CountStreak(days, everyDay, today); got != 2 {
		t.Errorf("CountStreak = %d, want 2", got)
	}
}

func TestCountStreak_EmptyAgenda(t *testing.T) {
	today := mustDate(t, "2026-08-26")
	days := map[string]model.DayStatus{
		"2026-08-26": model.DayStatusSuccess,
	}

	if got := CountStreak(days, model.Agenda{}, today); got != 0 {
		t.Errorf("CountStreak with empty agenda = %d, want 0", got)
	}
}
