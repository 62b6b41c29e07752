package reconcile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ArsenalSync_Go/internal/catalog"
	"github.com/osse101/ArsenalSync_Go/internal/domain"
	"github.com/osse101/ArsenalSync_Go/internal/store"
	"github.com/osse101/ArsenalSync_Go/internal/store/memory"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestReconciler(s store.Store) *Reconciler {
	return New(s, WithClock(func() time.Time { return fixedNow }))
}

func rulesCollection() Collection {
	return DefaultCollections(catalog.NewDefault())[0]
}

func TestInitializeIfEmpty_NonEmptyPerformsNoWrites(t *testing.T) {
	existing := store.Record{"ordinal": 0, "unlock_cost": 77, "created_at": "2020-01-01T00:00:00Z"}
	ms := new(store.MockStore)
	ms.On("Query", mock.Anything, store.CollectionUnlockRules, store.Filter{Limit: 1}).
		Return([]store.Document{{Key: "00", Record: existing}}, nil)

	r := newTestReconciler(ms)
	res := r.InitializeIfEmpty(context.Background(), rulesCollection())

	require.NoError(t, res.Err)
	assert.Equal(t, StateNonEmpty, res.State)
	assert.Zero(t, res.Written)
	ms.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	ms.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, StateNonEmpty, r.State(store.CollectionUnlockRules))
}

func TestInitializeIfEmpty_RecordUnchanged(t *testing.T) {
	s := memory.New()
	original := store.Record{"ordinal": 0, "unlock_cost": 77, "created_at": "2020-01-01T00:00:00Z"}
	s.Seed(store.CollectionUnlockRules, "00", original)
	before := s.Snapshot(store.CollectionUnlockRules)

	res := newTestReconciler(s).InitializeIfEmpty(context.Background(), rulesCollection())

	require.NoError(t, res.Err)
	assert.Equal(t, before, s.Snapshot(store.CollectionUnlockRules))
	assert.Zero(t, s.Writes())
}

func TestInitializeIfEmpty_SeedsPaddedKeys(t *testing.T) {
	s := memory.New()
	r := newTestReconciler(s)

	res := r.InitializeIfEmpty(context.Background(), rulesCollection())
	require.NoError(t, res.Err)
	assert.Equal(t, StateInitialized, res.State)
	assert.Equal(t, len(domain.AllTowerTypes), res.Written)

	docs := s.Snapshot(store.CollectionUnlockRules)
	require.Contains(t, docs, "07")
	assert.Equal(t, "2024-05-01T12:00:00Z", docs["07"][store.FieldCreatedAt])
	assert.NotContains(t, docs, "7")

	// A second call finds the collection populated and leaves it alone
	writes := s.Writes()
	res = r.InitializeIfEmpty(context.Background(), rulesCollection())
	assert.Equal(t, StateNonEmpty, res.State)
	assert.Equal(t, writes, s.Writes())
}

func TestInitializeIfEmpty_NeverSeededCollection(t *testing.T) {
	s := memory.New()
	res := newTestReconciler(s).InitializeIfEmpty(context.Background(), Collection{Name: store.CollectionInventories})

	require.NoError(t, res.Err)
	assert.Equal(t, StateEmpty, res.State)
	assert.Zero(t, s.Writes())
}

// collectionOutage fails every call touching one collection
type collectionOutage struct {
	store.Store
	collection string
}

func (o collectionOutage) Query(ctx context.Context, c string, f store.Filter) ([]store.Document, error) {
	if c == o.collection {
		return nil, store.NewRemoteError(store.OpQuery, c, "", store.ErrPermissionDenied)
	}
	return o.Store.Query(ctx, c, f)
}

func TestInitializeAll_PartialSuccess(t *testing.T) {
	s := memory.New()
	s.Seed(store.CollectionShopLayout, store.MainKey, store.Record{"keys": []any{"Cannon1"}})
	collections := DefaultCollections(catalog.NewDefault())

	results := newTestReconciler(collectionOutage{Store: s, collection: store.CollectionUnlockRules}).
		InitializeAll(context.Background(), collections)

	require.Len(t, results, len(collections))
	assert.ErrorIs(t, results[store.CollectionUnlockRules].Err, domain.ErrRemote)
	assert.Equal(t, StateUnchecked, results[store.CollectionUnlockRules].State)
	assert.Equal(t, StateNonEmpty, results[store.CollectionShopLayout].State)
	assert.Equal(t, StateEmpty, results[store.CollectionInventories].State)
	assert.Equal(t, []string{store.CollectionUnlockRules}, FailedCollections(results))
	assert.Zero(t, s.Writes())
}

func TestInitializeIfEmpty_WriteFailureStopsCollection(t *testing.T) {
	s := memory.New()
	s.FailOn(store.OpSet, store.ErrUnavailable)

	res := newTestReconciler(s).InitializeIfEmpty(context.Background(), rulesCollection())

	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, domain.ErrRemote)
	assert.Equal(t, StateEmpty, res.State)
	assert.Zero(t, res.Written)
}

func TestInitializeIfEmpty_NotInitializedStore(t *testing.T) {
	res := newTestReconciler(store.NewNoopStore()).InitializeIfEmpty(context.Background(), rulesCollection())

	assert.ErrorIs(t, res.Err, domain.ErrNotInitialized)
}
