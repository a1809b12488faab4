package model

import "time"

// DayStatus classifies a recorded habit day.
type DayStatus string

const (
	DayStatusSuccess  DayStatus = "success"
	DayStatusFail     DayStatus = "fail"
	DayStatusBreakday DayStatus = "breakday" // filled in for unmarked off-agenda days
)

// ValidDayStatus reports whether s is a status clients may set.
// Breakday is assigned by the reconciler, never by user input.
func ValidDayStatus(s DayStatus) bool {
	return s == DayStatusSuccess || s == DayStatusFail
}

// CalendarDay records the outcome of one habit on one local date.
type CalendarDay struct {
	BaseModel
	CalendarID int64     `gorm:"not null;uniqueIndex:idx_calendar_days_calendar_date" json:"calendar_id"`
	Date       time.Time `gorm:"type:date;not null;uniqueIndex:idx_calendar_days_calendar_date" json:"date"`
	Status     DayStatus `gorm:"type:varchar(16);not null" json:"status"`
}

func (CalendarDay) TableName() string {
	return "calendar_days"
}
