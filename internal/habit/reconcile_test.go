package habit

import (
	"testing"
	"time"

	"Habitual/internal/model"
)

func TestNeedsBreakday(t *testing.T) {
	weekdaysOnly := model.Agenda{false, true, true, true, true, true, false}

	cases := []struct {
		name     string
		weekday  time.Weekday
		status   model.DayStatus
		recorded bool
		want     bool
	}{
		{"expected day untouched", time.Monday, "", false, false},
		{"expected day with fail untouched", time.Monday, model.DayStatusFail, true, false},
		{"off day unrecorded", time.Sunday, "", false, true},
		{"off day with fail overwritten", time.Sunday, model.DayStatusFail, true, true},
		{"off day success preserved", time.Sunday, model.DayStatusSuccess, true, false},
		{"off day already breakday", time.Sunday, model.DayStatusBreakday, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NeedsBreakday(weekdaysOnly, tc.weekday, tc.status, tc.recorded)
			if got != tc.want {
				t.Errorf("NeedsBreakday = %v, want %v", got, tc.want)
			}
		})
	}
}

// Applying the predicate twice must converge: the write it asks for
// makes a second pass over the same day a no-op.
func TestNeedsBreakdayIdempotent(t *testing.T) {
	agenda := model.Agenda{}
	if !NeedsBreakday(agenda, time.Sunday, "", false) {
		t.Fatal("first pass should request a breakday")
	}
	if NeedsBreakday(agenda, time.Sunday, model.DayStatusBreakday, true) {
		t.Error("second pass should leave the breakday alone")
	}
}
