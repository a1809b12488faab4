package habit

import (
	"time"

	"Habitual/internal/model"
)

// NeedsBreakday decides whether the daily reconciliation sweep should
// write a breakday entry for today. Expected days are never touched,
// an existing success is never downgraded, and an existing breakday is
// left alone so re-running the sweep is a no-op.
func NeedsBreakday(agenda model.Agenda, weekday time.Weekday, status model.DayStatus, recorded bool) bool {
	if agenda[int(weekday)] {
		return false
	}
	if !recorded {
		return true
	}
	return status != model.DayStatusSuccess && status != model.DayStatusBreakday
}
