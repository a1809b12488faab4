package dto

// UserProfileData is the full profile returned by GET /users/me.
type UserProfileData struct {
	ID                 string `json:"id"`
	Username           string `json:"username"`
	Timezone           string `json:"timezone"`
	WeekStartsMonday   bool   `json:"week_starts_monday"`
	MatrixRoomID       string `json:"matrix_room_id"`
	NotifyWindowStart  string `json:"notify_window_start"`
	NotifyWindowEnd    string `json:"notify_window_end"`
	StreaksDoneEnabled bool   `json:"streaks_done_enabled"`
	StreaksDoneRoomID  string `json:"streaks_done_room_id"`
}

// UpdateSettingsRequest patches user settings. Nil fields stay unchanged.
type UpdateSettingsRequest struct {
	Timezone           *string `json:"timezone,omitempty"`
	WeekStartsMonday   *bool   `json:"week_starts_monday,omitempty"`
	MatrixRoomID       *string `json:"matrix_room_id,omitempty"`
	NotifyWindowStart  *string `json:"notify_window_start,omitempty"`
	NotifyWindowEnd    *string `json:"notify_window_end,omitempty"`
	StreaksDoneEnabled *bool   `json:"streaks_done_enabled,omitempty"`
	StreaksDoneRoomID  *string `json:"streaks_done_room_id,omitempty"`
}
