package validation

import "errors"

// ErrSchemaViolation is wrapped by every document that fails its schema
var ErrSchemaViolation = errors.New("schema validation failed")

// Error Messages
const (
	ErrMsgParseSchema    = "failed to parse schema"
	ErrMsgCompileSchema  = "failed to compile schema"
	ErrMsgLoadSchema     = "failed to load schema"
	ErrMsgSchemaNotFound = "schema file not found"
	ErrMsgReadDataFile   = "failed to read data file"
	ErrMsgParseData      = "failed to parse JSON data"
)
