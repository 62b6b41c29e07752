package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of session logs kept, including the new one
	LogFileRetentionCount = 10
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStarting            = "Starting ArsenalSync"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgConfigWarning       = "Configuration warning"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
)

// =============================================================================
// Storage
// =============================================================================

const (
	LogMsgStoreOpened       = "Document store opened"
	ErrMsgUnknownDriver     = "unknown store driver"
	ErrMsgFailedOpenSQLite  = "failed to open sqlite store"
	ErrMsgFailedOpenPool    = "failed to connect to postgres"
	ErrMsgFailedMigrate     = "failed to apply migrations"
	ErrMsgFailedCreateDBDir = "failed to create database directory"
)

// =============================================================================
// Event System
// =============================================================================

const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgChangeLoggerRegistered     = "Change logger registered"
	LogMsgSelectionChanged           = "Selection changed"
	LogMsgDefinitionsResolved        = "Working definitions replaced"
	ErrMsgFailedCreateDeadLetter     = "failed to create dead-letter writer"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
)

// =============================================================================
// Catalog Sync
// =============================================================================

const (
	LogMsgCatalogFileMissing    = "Catalog file not found, using built-in rules"
	LogMsgSyncSkipped           = "Boot sync disabled, serving the file catalog"
	LogMsgCollectionInitialized = "Collection initialized"
	LogMsgCollectionInitFailed  = "Collection initialization failed"
	LogMsgKeysMigrated          = "Ordinal keys migrated"
	LogMsgKeyMigrationFailed    = "Ordinal key migration failed"
	LogMsgSessionLoaded         = "Catalog session loaded from store"
	LogMsgSessionLoadFailed     = "Catalog session load failed, serving the file catalog"
	LogMsgRuleSkipped           = "Stored rule skipped"
	LogMsgConsistencyWarning    = "Stored catalog is inconsistent"
	ErrMsgFailedLoadCatalog     = "failed to load catalog"
	LogMsgRefreshScheduled      = "Catalog refresh scheduled"
	LogMsgStoppingRefresh       = "Stopping catalog refresh..."
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShutdownSignal             = "Shutdown signal received"
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgClosingStore               = "Closing document store..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
)

// Catalog refresh worker sizing. One reload at a time is enough; a tick that
// finds one queued is dropped.
const (
	RefreshWorkers   = 1
	RefreshQueueSize = 1
)
