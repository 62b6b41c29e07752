package inventory

import "time"

// Defaults used when the service config leaves a field zero
const (
	DefaultCacheSize = 1024
	DefaultCacheTTL  = 10 * time.Minute
)

// Log Messages
const (
	LogMsgInventoryCreated   = "Created empty inventory"
	LogMsgMutationRejected   = "Inventory mutation rejected"
	LogMsgPersistFailed      = "Failed to persist inventory, cache invalidated"
	LogMsgInventoryPersisted = "Inventory persisted"
)

// Error Messages
const (
	ErrMsgLoadFailed    = "failed to load inventory"
	ErrMsgPersistFailed = "failed to persist inventory"
)
