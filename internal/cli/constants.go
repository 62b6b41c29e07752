package cli

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ValidFormats lists the accepted --format values
var ValidFormats = []string{FormatText, FormatJSON}

// Error messages
const (
	ErrMsgInvalidFormat     = "invalid format %q: must be one of %v"
	ErrMsgLoadConfig        = "failed to load configuration"
	ErrMsgCollectionsFailed = "collections failed to initialize: %v"
	ErrMsgMigrationFailed   = "key migration failed for %d collection(s)"
	ErrMsgCatalogInvalid    = "catalog is invalid"
	ErrMsgReadProgress      = "failed to read progress for owner %s"
	ErrMsgNegativeFlag      = "--%s must not be negative"
)

// Table layouts. The last column is never padded.
const (
	initRowFormat    = "%-22s %-12s %s\n"
	migrateRowFormat = "%-22s %5s %s\n"
	explainRowFormat = "%-14s %-11s %6s %-5s %-22s %s\n"
)

// Messages
const (
	MsgCatalogValid   = "catalog %s is valid: %d rules, %d definitions\n"
	MsgExplainSummary = "\n%d of %d towers can be unlocked\n"
	MsgWarningsFound  = "%d consistency warning(s)\n"
)

// Log messages
const (
	LogMsgKeyMigrationFailed = "Key migration failed"
)
