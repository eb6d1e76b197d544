package core

// Error codes sent to clients as ERROR events. None of them terminate the
// session or the process.
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeInvalidMessageType = "INVALID_MESSAGE_TYPE"
	ErrCodeInvalidRoomCode    = "INVALID_ROOM_CODE"
	ErrCodeNotInRoom          = "NOT_IN_ROOM"
	ErrCodeRoomNotFound       = "ROOM_NOT_FOUND"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// CoreError wraps a stable code and a human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
