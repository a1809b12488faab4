package model

// Notification kinds carried in queue messages.
const (
	NotifyKindReminder = "reminder" // habit still open today
	NotifyKindCongrat  = "congrat"  // single habit completed
	NotifyKindAllDone  = "all_done" // every habit completed today
)

// NotificationSend is one message to deliver to one room.
type NotificationSend struct {
	RoomID     string `json:"room_id"`
	Body       string `json:"body"`
	Kind       string `json:"kind"`
	UserID     int64  `json:"user_id"`
	CalendarID int64  `json:"calendar_id,omitempty"`
}

// NotificationBatchMessage groups the sends decided by one sweep pass.
type NotificationBatchMessage struct {
	MessageID   string             `json:"message_id"` // unique per message, used for idempotency checks
	BatchID     string             `json:"batch_id"`
	ScheduledAt string             `json:"scheduled_at"`
	Sends       []NotificationSend `json:"sends"`
}
