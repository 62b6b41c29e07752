package sqlite

// Error Messages
const (
	ErrMsgFailedToDecodeDocument = "failed to decode document"
	ErrMsgFailedToEncodeDocument = "failed to encode document"
	ErrMsgFailedToEncodeFilter   = "failed to encode query filter"
)

const (
	queryExists = `SELECT COUNT(*) FROM documents WHERE collection = ? AND key = ?`
	queryGet    = `SELECT data FROM documents WHERE collection = ? AND key = ?`
	queryAll    = `SELECT key, data FROM documents WHERE collection = ?`
	// SQLite compares integer 3 and real 3.0 as equal
	queryFiltered = `SELECT key, data FROM documents WHERE collection = ? AND json_extract(data, ?) = json_extract(?, '$')`
	queryUpsert   = `INSERT INTO documents (collection, key, data, updated_at) VALUES (?, ?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
ON CONFLICT (collection, key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`
	queryDelete = `DELETE FROM documents WHERE collection = ? AND key = ?`
)
