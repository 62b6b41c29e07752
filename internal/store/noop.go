package store

import (
	"context"
	"log/slog"

	"github.com/osse101/ArsenalSync_Go/internal/domain"
)

// NoopStore stands in when no backing store is configured or the connection
// is not ready yet. Reads come back empty, writes are rejected.
type NoopStore struct{}

// NewNoopStore returns a store that is never initialized
func NewNoopStore() *NoopStore {
	return &NoopStore{}
}

func (NoopStore) Exists(ctx context.Context, collection, key string) (bool, error) {
	slog.Debug(LogMsgNotInitializedRead, "op", OpExists, "collection", collection, "key", key)
	return false, nil
}

func (NoopStore) Get(ctx context.Context, collection, key string) (Record, bool, error) {
	slog.Debug(LogMsgNotInitializedRead, "op", OpGet, "collection", collection, "key", key)
	return nil, false, nil
}

func (NoopStore) Query(ctx context.Context, collection string, filter Filter) ([]Document, error) {
	slog.Debug(LogMsgNotInitializedRead, "op", OpQuery, "collection", collection)
	return nil, nil
}

func (NoopStore) Set(ctx context.Context, collection, key string, rec Record) error {
	slog.Warn(LogMsgNotInitializedWrite, "op", OpSet, "collection", collection, "key", key)
	return domain.ErrNotInitialized
}

func (NoopStore) Delete(ctx context.Context, collection, key string) error {
	slog.Warn(LogMsgNotInitializedWrite, "op", OpDelete, "collection", collection, "key", key)
	return domain.ErrNotInitialized
}
