// FILE: internal/core/error.go
package core

// Error codes
const (
	ErrNotFound       = "NOT_FOUND"
	ErrMalformedMove  = "MALFORMED_MOVE"
	ErrIllegalMove    = "ILLEGAL_MOVE"
	ErrBotTimeout     = "BOT_TIMEOUT"
	ErrBotCrashed     = "BOT_CRASHED"
	ErrInvalidRequest = "INVALID_REQUEST"
	ErrInternalError  = "INTERNAL_ERROR"
)
