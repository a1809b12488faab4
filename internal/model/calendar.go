package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Agenda marks which weekdays a habit is expected on.
// Index 0 is Sunday, matching time.Weekday.
type Agenda [7]bool

// Value implements driver.Valuer so the agenda persists as JSONB.
func (a Agenda) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner for JSONB round-trips.
func (a *Agenda) Scan(value interface{}) error {
	if value == nil {
		*a = Agenda{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("agenda: unsupported scan type %T", value)
	}
	return json.Unmarshal(raw, a)
}

// IsEmpty reports whether no weekday is scheduled.
func (a Agenda) IsEmpty() bool {
	for _, day := range a {
		if day {
			return false
		}
	}
	return true
}

// Calendar is a single tracked habit owned by one user.
type Calendar struct {
	BaseModel
	PublicID int64  `gorm:"uniqueIndex;not null" json:"public_id"`
	UserID   int64  `gorm:"not null;index:idx_calendars_user_id" json:"user_id"`
	Name     string `gorm:"type:varchar(128);not null" json:"name"`
	Agenda   Agenda `gorm:"type:jsonb;not null;default:'[false,false,false,false,false,false,false]'" json:"agenda"`

	RemindersEnabled bool `gorm:"not null;default:true" json:"reminders_enabled"`
	CongratsEnabled  bool `gorm:"not null;default:false" json:"congrats_enabled"`
}

func (Calendar) TableName() string {
	return "calendars"
}
