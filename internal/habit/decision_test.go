package habit

import (
	"testing"
	"time"

	"Habitual/internal/model"
)

// noon on 2026-08-26, a Wednesday
var sweepNow = time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

func openWindow(t *testing.T) Window {
	t.Helper()
	w, err := ParseWindow("", "")
	if err != nil {
		t.Fatalf("ParseWindow failed: %v", err)
	}
	return w
}

func testUser(t *testing.T) UserState {
	return UserState{
		ID:                 1,
		RoomID:             "!room:example.org",
		CongratRoomID:      "!done:example.org",
		Window:             openWindow(t),
		StreaksDoneEnabled: true,
	}
}

func calendarWith(id int64, name string, status model.DayStatus, recorded bool) CalendarState {
	days := map[string]model.DayStatus{}
	if recorded {
		days[sweepNow.Format(DateLayout)] = status
	}
	return CalendarState{
		ID:               id,
		Name:             name,
		Agenda:           everyDay,
		RemindersEnabled: true,
		Days:             days,
	}
}

func TestEvaluate_SingleReminderForFailingCalendar(t *testing.T) {
	user := testUser(t)
	calendars := []CalendarState{
		calendarWith(1, "Run", model.DayStatusFail, true),
		calendarWith(2, "Read", model.DayStatusSuccess, true),
	}

	d := Evaluate(user, calendars, sweepNow)

	if len(d.Sends) != 1 {
		t.Fatalf("got %d sends, want 1: %+v", len(d.Sends), d.Sends)
	}
	send := d.Sends[0]
	if send.Kind != model.NotifyKindReminder || send.CalendarID != 1 {
		t.Errorf("unexpected send %+v", send)
	}
	if want := `⏰ Don't break the chain! "Run" is still open today — current streak: 0.`; send.Body != want {
		t.Errorf("body = %q, want %q", send.Body, want)
	}
	if d.SentTodayChanged {
		t.Errorf("sent-today flag changed with nothing to reset")
	}
}

func TestEvaluate_UnrecordedExpectedDayReminds(t *testing.T) {
	user := testUser(t)
	user.StreaksDoneEnabled = false
	calendars := []CalendarState{calendarWith(1, "Run", "", false)}

	d := Evaluate(user, calendars, sweepNow)

	if len(d.Sends) != 1 || d.Sends[0].Kind != model.NotifyKindReminder {
		t.Fatalf("got sends %+v, want one reminder", d.Sends)
	}
}

func TestEvaluate_UnrecordedOffDayStaysQuiet(t *testing.T) {
	user := testUser(t)
	user.StreaksDoneEnabled = false
	cal := calendarWith(1, "Run", "", false)
	cal.Agenda = model.Agenda{} // nothing expected, reconciler will fill breakday
	d := Evaluate(user, []CalendarState{cal}, sweepNow)

	if len(d.Sends) != 0 {
		t.Errorf("got sends %+v, want none", d.Sends)
	}
}

func TestEvaluate_AllDoneFiresOnce(t *testing.T) {
	user := testUser(t)
	calendars := []CalendarState{
		calendarWith(1, "Run", model.DayStatusSuccess, true),
		calendarWith(2, "Read", model.DayStatusBreakday, true),
	}

	d := Evaluate(user, calendars, sweepNow)
	if len(d.Sends) != 1 {
		t.Fatalf("got %d sends, want 1: %+v", len(d.Sends), d.Sends)
	}
	if d.Sends[0].Kind != model.NotifyKindAllDone || d.Sends[0].RoomID != "!done:example.org" {
		t.Errorf("unexpected send %+v", d.Sends[0])
	}
	if d.Sends[0].Body != "🎉 All habits done for today. Keep it going!" {
		t.Errorf("body = %q", d.Sends[0].Body)
	}
	if !d.SentToday || !d.SentTodayChanged {
		t.Errorf("flag transition = (%v, changed=%v), want (true, true)", d.SentToday, d.SentTodayChanged)
	}

	// Second pass the same day: flag already set, nothing fires.
	user.StreaksDoneSentToday = true
	d = Evaluate(user, calendars, sweepNow)
	if len(d.Sends) != 0 || d.SentTodayChanged {
		t.Errorf("second evaluation re-fired: %+v", d)
	}
}

func TestEvaluate_FailureResetsSentToday(t *testing.T) {
	user := testUser(t)
	user.StreaksDoneSentToday = true
	// Window excludes noon; the reset must still happen because it
	// tracks calendar state, not dispatch.
	w, err := ParseWindow("22:00", "06:00")
	if err != nil {
		t.Fatalf("ParseWindow failed: %v", err)
	}
	user.Window = w

	calendars := []CalendarState{
		calendarWith(1, "Run", model.DayStatusSuccess, true),
		calendarWith(2, "Read", model.DayStatusFail, true),
	}

	d := Evaluate(user, calendars, sweepNow)
	if len(d.Sends) != 0 {
		t.Errorf("window-suppressed run produced sends: %+v", d.Sends)
	}
	if d.SentToday || !d.SentTodayChanged {
		t.Errorf("flag transition = (%v, changed=%v), want (false, true)", d.SentToday, d.SentTodayChanged)
	}
}

func TestEvaluate_OutsideWindowSuppressesSends(t *testing.T) {
	user := testUser(t)
	w, err := ParseWindow("22:00", "06:00")
	if err != nil {
		t.Fatalf("ParseWindow failed: %v", err)
	}
	user.Window = w

	calendars := []CalendarState{calendarWith(1, "Run", model.DayStatusFail, true)}
	if d := Evaluate(user, calendars, sweepNow); len(d.Sends) != 0 {
		t.Errorf("got sends %+v outside window", d.Sends)
	}

	evening := time.Date(2026, 8, 26, 23, 0, 0, 0, time.UTC)
	if d := Evaluate(user, calendars, evening); len(d.Sends) != 1 {
		t.Errorf("got %d sends inside wrapped window, want 1", len(d.Sends))
	}
}

func TestEvaluate_DisabledCalendarsIgnored(t *testing.T) {
	user := testUser(t)
	failing := calendarWith(1, "Run", model.DayStatusFail, true)
	failing.RemindersEnabled = false
	done := calendarWith(2, "Read", model.DayStatusSuccess, true)

	d := Evaluate(user, []CalendarState{failing, done}, sweepNow)

	// The muted failing calendar neither reminds nor blocks all-done.
	if len(d.Sends) != 1 || d.Sends[0].Kind != model.NotifyKindAllDone {
		t.Errorf("got sends %+v, want one all-done", d.Sends)
	}
}

func TestEvaluate_NoEligibleCalendarsNoCongrat(t *testing.T) {
	user := testUser(t)
	d := Evaluate(user, nil, sweepNow)
	if len(d.Sends) != 0 || d.SentTodayChanged {
		t.Errorf("empty calendar set produced %+v", d)
	}
}
