// Package sqlite implements the document store on a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sqlitelib "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/osse101/ArsenalSync_Go/internal/store"
)

// DocumentStore implements store.Store on the documents table
type DocumentStore struct {
	db *sql.DB
}

// NewDocumentStore creates a DocumentStore. The schema must already be migrated.
func NewDocumentStore(db *sql.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

var _ store.Store = (*DocumentStore)(nil)

func (s *DocumentStore) Exists(ctx context.Context, collection, key string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, queryExists, collection, key).Scan(&n)
	if err != nil {
		return false, wrap(store.OpExists, collection, key, err)
	}
	return n > 0, nil
}

func (s *DocumentStore) Get(ctx context.Context, collection, key string) (store.Record, bool, error) {
	var data string
	err := s.db.QueryRowContext(ctx, queryGet, collection, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, wrap(store.OpGet, collection, key, err)
	}
	rec, err := decode(collection, key, data)
	if err != nil {
		return nil, false, err
	}
	return rec, true, nil
}

func (s *DocumentStore) Query(ctx context.Context, collection string, filter store.Filter) ([]store.Document, error) {
	query := queryAll
	args := []any{collection}
	if filter.Field != "" {
		value, err := json.Marshal(filter.Equals)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToEncodeFilter, err)
		}
		query = queryFiltered
		args = append(args, jsonPath(filter.Field), string(value))
	}
	query += " ORDER BY key"
	if filter.Limit > 0 {
		query = fmt.Sprintf("%s LIMIT %d", query, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrap(store.OpQuery, collection, "", err)
	}
	defer rows.Close()

	var docs []store.Document
	for rows.Next() {
		var key, data string
		if err := rows.Scan(&key, &data); err != nil {
			return nil, wrap(store.OpQuery, collection, "", err)
		}
		rec, err := decode(collection, key, data)
		if err != nil {
			return nil, err
		}
		docs = append(docs, store.Document{Key: key, Record: rec})
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(store.OpQuery, collection, "", err)
	}
	return docs, nil
}

func (s *DocumentStore) Set(ctx context.Context, collection, key string, rec store.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%s %s/%s: %w", ErrMsgFailedToEncodeDocument, collection, key, err)
	}
	if _, err := s.db.ExecContext(ctx, queryUpsert, collection, key, string(data)); err != nil {
		return wrap(store.OpSet, collection, key, err)
	}
	return nil
}

func (s *DocumentStore) Delete(ctx context.Context, collection, key string) error {
	if _, err := s.db.ExecContext(ctx, queryDelete, collection, key); err != nil {
		return wrap(store.OpDelete, collection, key, err)
	}
	return nil
}

func decode(collection, key, data string) (store.Record, error) {
	var rec store.Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("%s %s/%s: %w", ErrMsgFailedToDecodeDocument, collection, key, err)
	}
	return rec, nil
}

// jsonPath quotes a top-level field name for json_extract
func jsonPath(field string) string {
	return `$."` + strings.ReplaceAll(field, `"`, `\"`) + `"`
}

// wrap maps SQLite result codes onto the store error kinds
func wrap(op, collection, key string, err error) error {
	var sqliteErr *sqlitelib.Error
	if errors.As(err, &sqliteErr) {
		// Extended codes carry the primary code in the low byte
		switch sqliteErr.Code() & 0xff {
		case sqlite3.SQLITE_PERM, sqlite3.SQLITE_AUTH, sqlite3.SQLITE_READONLY:
			err = fmt.Errorf("%w: %w", store.ErrPermissionDenied, err)
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_IOERR:
			err = fmt.Errorf("%w: %w", store.ErrUnavailable, err)
		}
	}
	if errors.Is(err, sql.ErrConnDone) {
		err = fmt.Errorf("%w: %w", store.ErrUnavailable, err)
	}
	return store.NewRemoteError(op, collection, key, err)
}
