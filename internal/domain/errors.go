package domain

import (
	"errors"
	"fmt"
	"time"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Content errors
	ErrMsgInvalidContentData = "invalid content data"
	ErrMsgInvalidType        = "invalid content type"
	ErrMsgNoContentAvailable = "no content available"

	// Entitlement errors
	ErrMsgDailyLimitReached = "daily spin limit reached"
	ErrMsgInvalidAmount     = "amount must be a positive integer"
	ErrMsgInvalidTimezone   = "invalid timezone"

	// User errors
	ErrMsgUserNotFound = "user not found"

	// Database/System errors
	ErrMsgPersistenceFailure = "persistence failure"
	ErrMsgTxClosed           = "tx is closed"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrInvalidContentData = errors.New(ErrMsgInvalidContentData)
	ErrInvalidType        = errors.New(ErrMsgInvalidType)
	ErrNoContentAvailable = errors.New(ErrMsgNoContentAvailable)

	ErrDailyLimitReached = errors.New(ErrMsgDailyLimitReached)
	ErrInvalidAmount     = errors.New(ErrMsgInvalidAmount)
	ErrInvalidTimezone   = errors.New(ErrMsgInvalidTimezone)

	ErrUserNotFound = errors.New(ErrMsgUserNotFound)

	ErrPersistenceFailure = errors.New(ErrMsgPersistenceFailure)
)

// DailyLimitError is returned when a user has no spins left for the day.
// It carries the instant of the next reset so clients can render a countdown.
type DailyLimitError struct {
	UserID  string
	ResetAt time.Time
}

func (e DailyLimitError) Error() string {
	return fmt.Sprintf("%s for user %s: resets at %s", ErrMsgDailyLimitReached, e.UserID, e.ResetAt.Format(time.RFC3339))
}

// Is allows errors.Is(err, ErrDailyLimitReached) to match
func (e DailyLimitError) Is(target error) bool {
	if target == ErrDailyLimitReached {
		return true
	}
	_, ok := target.(DailyLimitError)
	return ok
}

// Remaining is always zero for an exhausted entitlement
func (e DailyLimitError) Remaining() int {
	return 0
}
