package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition carries a stable business error code plus a default message.
type Definition struct {
	Code    string
	Message string
}

// Auth errors.
var (
	Unauthorized         = Definition{Code: "UNAUTHORIZED", Message: "Unauthorized"}
	InvalidUserID        = Definition{Code: "INVALID_USER_ID", Message: "Invalid user ID format"}
	InvalidCredentials   = Definition{Code: "INVALID_CREDENTIALS", Message: "Invalid username or password"}
	UsernameAlreadyTaken = Definition{Code: "USERNAME_ALREADY_TAKEN", Message: "Username already taken"}
)

// Entity lookup errors.
var (
	UserNotFound     = Definition{Code: "USER_NOT_FOUND", Message: "User not found"}
	CalendarNotFound = Definition{Code: "CALENDAR_NOT_FOUND", Message: "Calendar not found"}
)

// Calendar / day-state errors.
var (
	InvalidDayStatus  = Definition{Code: "INVALID_DAY_STATUS", Message: "Day status must be success or fail"}
	InvalidDate       = Definition{Code: "INVALID_DATE", Message: "Date must be formatted YYYY-MM-DD"}
	InvalidAgenda     = Definition{Code: "INVALID_AGENDA", Message: "Agenda must have exactly 7 weekday flags"}
	InvalidTimeWindow = Definition{Code: "INVALID_TIME_WINDOW", Message: "Time window must be formatted HH:MM"}
	InvalidTimezone   = Definition{Code: "INVALID_TIMEZONE", Message: "Timezone must be a valid IANA name"}
)

// Notification channel errors.
var (
	ChannelConnectFailed = Definition{Code: "CHANNEL_CONNECT_FAILED", Message: "Notification channel connect failed"}
	ChannelSendFailed    = Definition{Code: "CHANNEL_SEND_FAILED", Message: "Notification send failed"}
)

// Rate limiting.
var TooManyRequests = Definition{Code: "TOO_MANY_REQUESTS", Message: "Too many requests, slow down"}

// Lookup resolves business error codes.
var Lookup = map[string]Definition{
	Unauthorized.Code:         Unauthorized,
	InvalidUserID.Code:        InvalidUserID,
	InvalidCredentials.Code:   InvalidCredentials,
	UsernameAlreadyTaken.Code: UsernameAlreadyTaken,
	UserNotFound.Code:         UserNotFound,
	CalendarNotFound.Code:     CalendarNotFound,
	InvalidDayStatus.Code:     InvalidDayStatus,
	InvalidDate.Code:          InvalidDate,
	InvalidAgenda.Code:        InvalidAgenda,
	InvalidTimeWindow.Code:    InvalidTimeWindow,
	InvalidTimezone.Code:      InvalidTimezone,
	ChannelConnectFailed.Code: ChannelConnectFailed,
	ChannelSendFailed.Code:    ChannelSendFailed,
	TooManyRequests.Code:      TooManyRequests,
}

// Get returns the Definition for a code, or a generic one if unknown.
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}
