package model

// User account with per-user notification settings.
type User struct {
	BaseModel
	PublicID     int64  `gorm:"uniqueIndex;not null" json:"public_id"`
	Username     string `gorm:"uniqueIndex;type:varchar(64);not null" json:"username"`
	PasswordHash string `gorm:"type:char(64);not null" json:"-"`

	// Per-user settings
	Timezone          string `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	WeekStartsMonday  bool   `gorm:"not null;default:true" json:"week_starts_monday"`
	MatrixRoomID      string `gorm:"type:varchar(255);not null;default:''" json:"matrix_room_id"`
	NotifyWindowStart string `gorm:"type:varchar(5);not null;default:'00:00'" json:"notify_window_start"`
	NotifyWindowEnd   string `gorm:"type:varchar(5);not null;default:'24:00'" json:"notify_window_end"`

	// All-habits-done congratulation settings
	StreaksDoneEnabled   bool   `gorm:"not null;default:false" json:"streaks_done_enabled"`
	StreaksDoneRoomID    string `gorm:"type:varchar(255);not null;default:''" json:"streaks_done_room_id"`
	StreaksDoneSentToday bool   `gorm:"not null;default:false" json:"streaks_done_sent_today"`
}

func (User) TableName() string {
	return "users"
}

// CongratRoomID resolves the room the all-done congratulation goes to.
// Falls back to the reminder room when no dedicated room is set.
func (u *User) CongratRoomID() string {
	if u.StreaksDoneRoomID != "" {
		return u.StreaksDoneRoomID
	}
	return u.MatrixRoomID
}
