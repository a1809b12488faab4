package habit

import (
	"fmt"
	"time"

	"Habitual/internal/model"
)

// CalendarState is the sweep's snapshot of one habit calendar.
type CalendarState struct {
	ID               int64
	Name             string
	Agenda           model.Agenda
	RemindersEnabled bool
	Days             DaySet
}

// UserState is the sweep's snapshot of one user's notification settings.
type UserState struct {
	ID                   int64
	RoomID               string
	CongratRoomID        string
	Window               Window
	StreaksDoneEnabled   bool
	StreaksDoneSentToday bool
}

// Send is one decided notification.
type Send struct {
	RoomID     string
	Body       string
	Kind       string
	CalendarID int64
}

// Decision is the outcome of one evaluation pass for one user.
// SentToday carries the new value of the all-done flag; the caller
// persists it whenever SentTodayChanged is set, independent of
// whether the sends are ever dispatched.
type Decision struct {
	Sends            []Send
	SentToday        bool
	SentTodayChanged bool
}

// Evaluate recomputes, from current state only, which notifications
// should fire right now for one user. Fail reminders fire per calendar
// with reminders enabled whose today is failing; the all-done
// congratulation fires at most once per day when every reminder-eligible
// calendar is passing. Both are gated by the user's time window, but the
// sent-today reset tracks calendar state and ignores the window.
func Evaluate(user UserState, calendars []CalendarState, now time.Time) Decision {
	todayKey := dateOnly(now).Format(DateLayout)
	weekday := now.Weekday()
	inWindow := user.Window.Contains(now)

	d := Decision{SentToday: user.StreaksDoneSentToday}

	anyEligible := false
	anyFailing := false
	for _, cal := range calendars {
		if !cal.RemindersEnabled {
			continue
		}
		anyEligible = true

		status, recorded := cal.Days[todayKey]
		// An unrecorded day only counts as failing when the agenda
		// expects it; off days wait for the reconciler's breakday.
		failing := status == model.DayStatusFail ||
			(!recorded && cal.Agenda[int(weekday)])
		if !failing {
			continue
		}
		anyFailing = true

		if inWindow && user.RoomID != "" {
			d.Sends = append(d.Sends, Send{
				RoomID:     user.RoomID,
				Body:       ReminderMessage(cal.Name, CountStreak(cal.Days, cal.Agenda, now)),
				Kind:       model.NotifyKindReminder,
				CalendarID: cal.ID,
			})
		}
	}

	switch {
	case anyFailing:
		if d.SentToday {
			d.SentToday = false
			d.SentTodayChanged = true
		}
	case anyEligible && user.StreaksDoneEnabled && !d.SentToday &&
		inWindow && user.CongratRoomID != "":
		d.Sends = append(d.Sends, Send{
			RoomID: user.CongratRoomID,
			Body:   AllDoneMessage(),
			Kind:   model.NotifyKindAllDone,
		})
		d.SentToday = true
		d.SentTodayChanged = true
	}

	return d
}

// ReminderMessage is the fail-reminder body. Pinned by tests.
func ReminderMessage(name string, streak int) string {
	return fmt.Sprintf("⏰ Don't break the chain! %q is still open today — current streak: %d.", name, streak)
}

// AllDoneMessage is the all-habits-done body. Pinned by tests.
func AllDoneMessage() string {
	return "🎉 All habits done for today. Keep it going!"
}

// CongratMessage is the single-habit completion body. Pinned by tests.
func CongratMessage(name string, streak int) string {
	return fmt.Sprintf("✅ %q done today — streak: %d!", name, streak)
}
