package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ArsenalSync_Go/internal/database"
	"github.com/osse101/ArsenalSync_Go/internal/domain"
	"github.com/osse101/ArsenalSync_Go/internal/store"
	"github.com/osse101/ArsenalSync_Go/internal/store/storetest"
)

func newTestStore(t *testing.T) *DocumentStore {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "documents.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.MigrateSQLite(context.Background(), db))
	return NewDocumentStore(db)
}

func TestDocumentStore_Conformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return newTestStore(t) })
}

func TestDocumentStore_FieldNameWithQuote(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "c", "a", store.Record{`we"ird`: "x"}))
	docs, err := s.Query(ctx, "c", store.Filter{Field: `we"ird`, Equals: "x"})
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestDocumentStore_ClosedDatabaseIsRemoteError(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.db.Close())

	_, err := s.Exists(context.Background(), "c", "a")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRemote)

	var remote *domain.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, store.OpExists, remote.Op)
	assert.Equal(t, "c", remote.Collection)
}
