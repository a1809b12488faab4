// Package habit holds the day-state rules shared by the API, the
// schedulers and the dispatch worker: streak counting, breakday
// reconciliation and the reminder/congratulation decision engine.
// Everything here is pure; callers inject the current time.
package habit

import (
	"time"

	"Habitual/internal/model"
)

// DateLayout is the wire and map-key format for calendar dates.
const DateLayout = "2006-01-02"

// CountStreak returns the current consecutive-success streak of one
// calendar, walking backward from today. Only agenda-expected days
// count; non-expected days (including breakdays) are skipped. An
// expected day with a fail, or an expected past day with no record,
// terminates the walk. Today itself is skipped while still unrecorded
// so an open day neither extends nor breaks the streak.
// DaySet maps a calendar's dates (DateLayout keys) to their recorded status.
type DaySet map[string]model.DayStatus

func CountStreak(days DaySet, agenda model.Agenda, today time.Time) int {
	if agenda.IsEmpty() || len(days) == 0 {
		return 0
	}

	// The walk never goes past the earliest recorded date, which keeps
	// it bounded even when the agenda expects nothing for long runs.
	earliest := earliestDate(days, today.Location())
	if earliest.IsZero() {
		return 0
	}
	day := dateOnly(today)

	streak := 0
	for !day.Before(earliest) {
		if agenda[int(day.Weekday())] {
			status, recorded := days[day.Format(DateLayout)]
			switch {
			case recorded && status == model.DayStatusSuccess:
				streak++
			case !recorded && day.Equal(dateOnly(today)):
				// today still open
			default:
				return streak
			}
		}
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func earliestDate(days DaySet, loc *time.Location) time.Time {
	var earliest time.Time
	for key := range days {
		d, err := time.ParseInLocation(DateLayout, key, loc)
		if err != nil {
			continue
		}
		if earliest.IsZero() || d.Before(earliest) {
			earliest = d
		}
	}
	return earliest
}
