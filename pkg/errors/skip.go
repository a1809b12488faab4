package errors

// SkipMessageError tells a queue consumer to ack and drop a message
// instead of requeueing it (duplicate delivery, stale batch, etc.).
type SkipMessageError struct {
	Reason string
}

func (e *SkipMessageError) Error() string {
	return "skip message: " + e.Reason
}

// IsSkipMessage reports whether err asks for an ack-and-drop.
func IsSkipMessage(err error) bool {
	_, ok := err.(*SkipMessageError)
	return ok
}
