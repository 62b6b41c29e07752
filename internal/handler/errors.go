package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingPathParam      = "Missing %s path parameter"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidQueryParam     = "Invalid %s query parameter"
	ErrMsgKeyMismatch           = "Body key does not match the path"
	ErrMsgDuplicateLayoutKey    = "Layout lists a tower more than once"
)

// User-facing messages derived from the error taxonomy
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgUnknownTower        = "Unknown tower"
	ErrMsgAlreadyOwned        = "You already own that tower"
	ErrMsgNotOwned            = "You don't own that tower"
	ErrMsgSelectionOverQuota  = "Too many towers selected"
	ErrMsgUnknownOrdinal      = "Unknown tower ordinal"
	ErrMsgLocked              = "That tower is locked"
	ErrMsgInvalidInputError   = "Invalid request. Please check your inputs."
	ErrMsgNotInitialized      = "Document store is not configured"
	ErrMsgRemoteUnavailable   = "Document store is temporarily unavailable. Please try again later."
	ErrMsgRemotePermission    = "Document store rejected the request"
	ErrMsgRemoteFailure       = "Document store request failed"
	ErrMsgConsistencyConflict = "Stored data is inconsistent"
)

// Success messages
const (
	MsgSessionLoaded = "Session loaded"
)

// Log messages
const (
	LogMsgDecodeFailed      = "Failed to decode request"
	LogMsgRequestDecoded    = "Request decoded"
	LogMsgServiceError      = "Service call failed"
	LogMsgEncodeFailed      = "Failed to encode JSON response"
	LogMsgWriteFailed       = "Failed to write response buffer"
	LogMsgReadinessFailed   = "Readiness check failed"
	LogMsgMigrationWarnings = "Key migration reported warnings"
)

// Error codes returned alongside messages
const (
	CodeNotInitialized = "not_initialized"
	CodeRemote         = "remote"
	CodeConsistency    = "consistency"
	CodeRuleNotFound   = "rule_not_found"
	CodeInvalidInput   = "invalid_input"
	CodeInternal       = "internal"
)
