package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
)

// User-facing messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidTypeError    = "Content type must be movie or series"
	ErrMsgDailyLimitError     = "No spins left today"
	ErrMsgNoContentError      = "No content available for this type right now"
	ErrMsgUserNotFoundError   = "User not found"
	ErrMsgInvalidAmountError  = "Amount must be a positive integer"
	ErrMsgInvalidTimezoneErr  = "Unknown timezone"
	ErrMsgInvalidContentError = "Content data is invalid"
)

// Log messages
const (
	LogMsgSpinFailed        = "Failed to open loot box"
	LogMsgGuestSpinFailed   = "Failed to open guest loot box"
	LogMsgStatusFailed      = "Failed to get spin status"
	LogMsgGrantFailed       = "Failed to grant override spins"
	LogMsgSetTimezoneFailed = "Failed to set timezone"
	LogMsgReadinessFailed   = "Readiness check failed"
)

// Health statuses
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
	HealthMsgDatabaseDown   = "database connection failed"
)
