package bootstrap

import "time"

// ServiceName is attached to every log line
const ServiceName = "cineloot"

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	EventDefaultMaxRetries = 5
	EventDefaultRetryDelay = 2 * time.Second

	// DirPermission is used for the dead-letter directory
	DirPermission = 0755
)

// =============================================================================
// Log Messages
// =============================================================================

const (
	LogMsgStarting               = "Starting CineLoot"
	LogMsgConfigurationLoaded    = "Configuration loaded"
	LogMsgConfigWarning          = "Configuration warning"
	LogMsgEventSystemInitialized = "Event system initialized"
	LogMsgDeadLetterDisabled     = "Dead-letter path not set, undeliverable events will only be logged"
	LogMsgMetricsCollectorReady  = "Event metrics collector registered"
	LogMsgRarityTableDefault     = "Using built-in rarity table"
	LogMsgRarityTableLoaded      = "Using rarity table override"
	LogMsgSpinServiceReady       = "Spin service initialized"

	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgDeadLetterCloseFailed      = "Failed to close dead-letter file"
	LogMsgServerStopped              = "Server stopped"
)

// =============================================================================
// Error Messages
// =============================================================================

const (
	ErrMsgFailedCreateDeadLetterDir = "failed to create dead-letter directory"
	ErrMsgFailedOpenDeadLetter      = "failed to open dead-letter file"
	ErrMsgFailedInitLogger          = "failed to initialize logger"
	ErrMsgFailedLoadRarityTable     = "failed to load rarity table"
)
