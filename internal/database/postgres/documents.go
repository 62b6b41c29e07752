// Package postgres implements the document store on a PostgreSQL JSONB table.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/ArsenalSync_Go/internal/store"
)

// DocumentStore implements store.Store on the documents table
type DocumentStore struct {
	pool *pgxpool.Pool
}

// NewDocumentStore creates a DocumentStore. The schema must already be migrated.
func NewDocumentStore(pool *pgxpool.Pool) *DocumentStore {
	return &DocumentStore{pool: pool}
}

var _ store.Store = (*DocumentStore)(nil)

func (s *DocumentStore) Exists(ctx context.Context, collection, key string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, queryExists, collection, key).Scan(&exists)
	if err != nil {
		return false, wrap(store.OpExists, collection, key, err)
	}
	return exists, nil
}

func (s *DocumentStore) Get(ctx context.Context, collection, key string) (store.Record, bool, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, queryGet, collection, key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, wrap(store.OpGet, collection, key, err)
	}

	var rec store.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, false, fmt.Errorf("%s %s/%s: %w", ErrMsgFailedToDecodeDocument, collection, key, err)
	}
	return rec, true, nil
}

func (s *DocumentStore) Query(ctx context.Context, collection string, filter store.Filter) ([]store.Document, error) {
	sql := queryAll
	args := []any{collection}
	if filter.Field != "" {
		value, err := json.Marshal(filter.Equals)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToEncodeFilter, err)
		}
		sql = queryFiltered
		args = append(args, filter.Field, string(value))
	}
	if filter.Limit > 0 {
		sql = fmt.Sprintf("%s LIMIT %d", sql, filter.Limit)
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrap(store.OpQuery, collection, "", err)
	}
	defer rows.Close()

	var docs []store.Document
	for rows.Next() {
		var key string
		var data []byte
		if err := rows.Scan(&key, &data); err != nil {
			return nil, wrap(store.OpQuery, collection, "", err)
		}
		var rec store.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("%s %s/%s: %w", ErrMsgFailedToDecodeDocument, collection, key, err)
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
	if _, err := s.pool.Exec(ctx, queryUpsert, collection, key, data); err != nil {
		return wrap(store.OpSet, collection, key, err)
	}
	return nil
}

func (s *DocumentStore) Delete(ctx context.Context, collection, key string) error {
	if _, err := s.pool.Exec(ctx, queryDelete, collection, key); err != nil {
		return wrap(store.OpDelete, collection, key, err)
	}
	return nil
}

// wrap maps PostgreSQL failures onto the store error kinds
func wrap(op, collection, key string, err error) error {
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr) && isPermissionCode(pgErr.Code):
		err = fmt.Errorf("%w: %w", store.ErrPermissionDenied, err)
	case errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, PgErrorClassConnection):
		err = fmt.Errorf("%w: %w", store.ErrUnavailable, err)
	case pgconn.Timeout(err):
		err = fmt.Errorf("%w: %w", store.ErrUnavailable, err)
	}
	return store.NewRemoteError(op, collection, key, err)
}

func isPermissionCode(code string) bool {
	switch code {
	case PgErrorCodeInsufficientPrivilege, PgErrorCodeInvalidAuthorization, PgErrorCodeInvalidPassword:
		return true
	}
	return false
}
