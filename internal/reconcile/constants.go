package reconcile

// Error Messages
const (
	ErrMsgSeedFailed      = "failed to seed"
	ErrMsgDecodeLayout    = "failed to decode shop layout"
	ErrMsgDecodeInventory = "failed to decode inventory"
	ErrMsgEmptyOwner      = "owner id is empty"
)

// Warning details
const (
	WarnMissingOrdinal        = "missing or non-integer ordinal"
	WarnFmtUnknownOrdinal     = "unknown ordinal %d"
	WarnUnknownTowerKey       = "unknown tower key"
	WarnFmtKeyConflict        = "legacy key %q differs from canonical key %q, keeping both"
	WarnFmtKeyOrdinalMismatch = "key does not name ordinal %d"
	WarnFmtShadowedKey        = "ordinal already loaded from key %q"
)

// Log Messages
const (
	LogMsgExistenceCheckFailed  = "Collection existence check failed"
	LogMsgCollectionNotEmpty    = "Collection already holds documents, skipping initialization"
	LogMsgCollectionInitialized = "Collection initialized with defaults"
	LogMsgSeedFailed            = "Failed to write default document"
	LogMsgKeyMigrated           = "Moved document to padded key"
	LogMsgLegacyKeyRemoved      = "Removed legacy key duplicating canonical document"
	LogMsgKeyConflict           = "Legacy key conflicts with canonical document"
	LogMsgRecordDropped         = "Dropped invalid record"
	LogMsgSessionLoadFailed     = "Session load failed, keeping last good cache"
)
