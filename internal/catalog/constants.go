package catalog

import "errors"

// Sentinel errors for the catalog loader
var (
	ErrInvalidConfig       = errors.New("invalid catalog configuration")
	ErrDuplicateRule       = errors.New("duplicate unlock rule")
	ErrDuplicateDefinition = errors.New("duplicate content definition")
)

// SchemaName is the registered name of the embedded catalog schema
const SchemaName = "catalog.schema.json"

// Error Messages
const (
	ErrMsgReadConfigFileFailed = "failed to read catalog config file"
	ErrMsgParseConfigFailed    = "failed to parse catalog config"
	ErrMsgSchemaFailed         = "schema validation failed for"
	ErrMsgConfigNil            = "config is nil"
	ErrMsgNoRulesDefined       = "no rules defined"
	ErrMsgNegativeRequirement  = "has a negative cost or level"
	ErrMsgUnknownRarity        = "has an unknown rarity"
	ErrMsgUnknownCategory      = "has an unknown category"
	ErrMsgEmptyDefinitionID    = "definition at index %d has an empty id"
	ErrMsgEmptyMilestone       = "has an empty milestone id"
)

// Log Messages
const (
	LogMsgCatalogLoaded = "Catalog configuration loaded"
)
