package constants

// Session / context keys
const (
	ContextKeyUserID          = "user_id"
	ContextKeyBoardPermission = "board_permission"
	SessionCookieName         = "board_session"
)

// Validation limits
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
