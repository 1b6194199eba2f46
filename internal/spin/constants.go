package spin

import "time"

// Retry defaults for the spin transaction
const (
	DefaultCommitRetries = 3
	DefaultRetryDelay    = 25 * time.Millisecond
)

// Error context messages
const (
	ErrContextFailedToLoadSettings   = "failed to load spin settings"
	ErrContextFailedToRollOver       = "failed to roll over daily entitlement"
	ErrContextFailedToQueryContent   = "failed to query content"
	ErrContextFailedToRecordSpin     = "failed to record spin"
	ErrContextFailedToGetEntitlement = "failed to get entitlement"
	ErrContextFailedToGrant          = "failed to grant override spins"
	ErrContextFailedToSetTimezone    = "failed to set timezone"
)

// Log messages
const (
	LogMsgSpinCompleted        = "Spin completed"
	LogMsgGuestSpinCompleted   = "Guest spin completed"
	LogMsgSpinRejected         = "Spin rejected"
	LogMsgSpinRetry            = "Retrying spin transaction"
	LogMsgSpinAlreadyRecorded  = "Spin attempt already recorded by an earlier commit"
	LogMsgContentNotScorable   = "Skipping content with invalid signals"
	LogMsgOverrideSpinsGranted = "Override spins granted"
	LogMsgTimezoneUpdated      = "User timezone updated"
	LogMsgPublishFailed        = "Failed to publish event"
	LogMsgUnknownTimezone      = "Unknown user timezone, using default"
)

// Log field keys
const (
	LogFieldUserID      = "user_id"
	LogFieldContentType = "content_type"
	LogFieldContentID   = "content_id"
	LogFieldRarity      = "rarity"
	LogFieldScore       = "quality_score"
	LogFieldNewUnlock   = "was_new_unlock"
	LogFieldSpinID      = "spin_id"
	LogFieldAttempt     = "attempt"
	LogFieldCandidates  = "candidates"
	LogFieldRejected    = "rejected"
	LogFieldAmount      = "amount"
	LogFieldTimezone    = "timezone"
	LogFieldFallback    = "fallback"
	LogFieldError       = "error"
)
