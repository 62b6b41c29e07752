package event

import "time"

// Event schema versioning
const (
	// EventSchemaVersion is the current event schema version
	EventSchemaVersion = "1.0"
)

// Retry and dead-letter defaults
const (
	DefaultRetryDelay         = 2 * time.Second
	DeadLetterFilePermissions = 0o644
	DeadLetterDirPermissions  = 0o755
)

// Log message constants
const (
	LogMsgObserverFailed        = "Change observer returned an error"
	LogMsgHandlerRetrying       = "Change observer failed, retrying in background"
	LogMsgRetrySucceeded        = "Change observer succeeded after retry"
	LogMsgRetryFailed           = "Change observer retry failed"
	LogMsgDeadLettered          = "Notification written to dead-letter file"
	LogMsgDeliveryDropped       = "Notification dropped after all retries"
	LogMsgDeadLetterWriteFailed = "Failed to write dead-letter entry"

	// Log message for handler errors
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)

// Error message constants
const (
	ErrMsgDeadLetterDir  = "failed to create dead-letter directory"
	ErrMsgDeadLetterOpen = "failed to open dead-letter file"
)
