package postgres

// PostgreSQL Error Codes
const (
	PgErrorCodeInsufficientPrivilege = "42501"
	PgErrorCodeInvalidAuthorization  = "28000"
	PgErrorCodeInvalidPassword       = "28P01"
	// PgErrorClassConnection prefixes every connection exception code
	PgErrorClassConnection = "08"
)

// Error Messages
const (
	ErrMsgFailedToDecodeDocument = "failed to decode document"
	ErrMsgFailedToEncodeDocument = "failed to encode document"
	ErrMsgFailedToEncodeFilter   = "failed to encode query filter"
)

const (
	queryExists = `SELECT EXISTS (SELECT 1 FROM documents WHERE collection = $1 AND key = $2)`
	queryGet    = `SELECT data FROM documents WHERE collection = $1 AND key = $2`
	queryAll    = `SELECT key, data FROM documents WHERE collection = $1 ORDER BY key`
	// jsonb equality treats 3 and 3.0 as equal
	queryFiltered = `SELECT key, data FROM documents WHERE collection = $1 AND data -> $2 = $3::jsonb ORDER BY key`
	queryUpsert   = `INSERT INTO documents (collection, key, data, updated_at) VALUES ($1, $2, $3, now())
ON CONFLICT (collection, key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`
	queryDelete = `DELETE FROM documents WHERE collection = $1 AND key = $2`
)
