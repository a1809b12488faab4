package model

import "testing"

func TestValidDayStatus(t *testing.T) {
	tests := []struct {
		name   string
		status DayStatus
		want   bool
	}{
		{"success settable", DayStatusSuccess, true},
		{"fail settable", DayStatusFail, true},
		{"breakday reserved for reconciliation", DayStatusBreakday, false},
		{"unknown value rejected", DayStatus("skipped"), false},
		{"empty rejected", DayStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidDayStatus(tt.status); got != tt.want {
				t.Errorf("ValidDayStatus(%q) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}
