package dto

// CreateCalendarRequest starts tracking a new habit.
type CreateCalendarRequest struct {
	Name             string  `json:"name" binding:"required"`
	Agenda           [7]bool `json:"agenda"`
	RemindersEnabled *bool   `json:"reminders_enabled,omitempty"`
	CongratsEnabled  *bool   `json:"congrats_enabled,omitempty"`
}

// UpdateCalendarRequest patches a habit. Nil fields stay unchanged.
type UpdateCalendarRequest struct {
	Name             *string  `json:"name,omitempty"`
	Agenda           *[7]bool `json:"agenda,omitempty"`
	RemindersEnabled *bool    `json:"reminders_enabled,omitempty"`
	CongratsEnabled  *bool    `json:"congrats_enabled,omitempty"`
}

// CalendarData is the habit view returned by calendar endpoints.
type CalendarData struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Agenda           [7]bool `json:"agenda"`
	RemindersEnabled bool    `json:"reminders_enabled"`
	CongratsEnabled  bool    `json:"congrats_enabled"`
	CreatedAt        string  `json:"created_at"`
}

// MarkDayRequest sets the status of one day.
type MarkDayRequest struct {
	Status string `json:"status" binding:"required"`
}

// DayData is one recorded day in range queries.
type DayData struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

// DayRangeQuery bounds a day listing.
type DayRangeQuery struct {
	From string `query:"from"`
	To   string `query:"to"`
}

// StreakData is the current streak of one habit.
type StreakData struct {
	CalendarID string `json:"calendar_id"`
	Streak     int    `json:"streak"`
	AsOf       string `json:"as_of"`
}
