package store

// Operation names used in logs, metrics and RemoteError.Op
const (
	OpExists = "exists"
	OpGet    = "get"
	OpQuery  = "query"
	OpSet    = "set"
	OpDelete = "delete"
)

// Driver names accepted by Open
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverNone     = "none"
)

// Log messages
const (
	LogMsgNotInitializedRead  = "Store not initialized, returning empty result"
	LogMsgNotInitializedWrite = "Store not initialized, write rejected"
	LogMsgStoreCallFailed     = "Store call failed"
)

// Collection names
const (
	CollectionUnlockRules = "unlock_rules"
	CollectionShopLayout  = "shop_layout"
	CollectionInventories = "inventories"
	CollectionProgress    = "player_progress"
)
