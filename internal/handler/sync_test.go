package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ArsenalSync_Go/internal/catalog"
	"github.com/osse101/ArsenalSync_Go/internal/domain"
	"github.com/osse101/ArsenalSync_Go/internal/reconcile"
	"github.com/osse101/ArsenalSync_Go/internal/store"
)

func TestSyncHandlers_Initialize(t *testing.T) {
	collections := reconcile.DefaultCollections(catalog.NewDefault())

	t.Run("All Succeed", func(t *testing.T) {
		syncer := &MockSyncer{}
		syncer.On("InitializeAll", mock.Anything, mock.Anything).Return(map[string]reconcile.CollectionResult{
			store.CollectionUnlockRules: {Collection: store.CollectionUnlockRules, State: reconcile.StateInitialized, Written: 8},
			store.CollectionShopLayout:  {Collection: store.CollectionShopLayout, State: reconcile.StateNonEmpty},
		})
		h := NewSyncHandlers(syncer, collections, nil)

		w := serve(t, http.MethodPost, "/sync/init", "/sync/init", nil, h.HandleInitialize())

		assert.Equal(t, http.StatusOK, w.Code)
		got := decodeBody[map[string]CollectionResultView](t, w)
		assert.Equal(t, 8, got[store.CollectionUnlockRules].Written)
		assert.Equal(t, reconcile.StateNonEmpty, got[store.CollectionShopLayout].State)
	})

	t.Run("Partial Failure", func(t *testing.T) {
		syncer := &MockSyncer{}
		syncer.On("InitializeAll", mock.Anything, mock.Anything).Return(map[string]reconcile.CollectionResult{
			store.CollectionUnlockRules: {Collection: store.CollectionUnlockRules, State: reconcile.StateInitialized, Written: 8},
			store.CollectionShopLayout:  {Collection: store.CollectionShopLayout, State: reconcile.StateUnchecked, Err: errors.New("permission denied")},
		})
		h := NewSyncHandlers(syncer, collections, nil)

		w := serve(t, http.MethodPost, "/sync/init", "/sync/init", nil, h.HandleInitialize())

		assert.Equal(t, http.StatusMultiStatus, w.Code)
		got := decodeBody[map[string]CollectionResultView](t, w)
		assert.Empty(t, got[store.CollectionUnlockRules].Error)
		assert.Contains(t, got[store.CollectionShopLayout].Error, "permission denied")
	})
}

func TestSyncHandlers_MigrateKeys(t *testing.T) {
	collections := reconcile.DefaultCollections(catalog.NewDefault())
	syncer := &MockSyncer{}
	syncer.On("MigrateKeys", mock.Anything, store.CollectionUnlockRules).Return(reconcile.MigrationResult{
		Collection: store.CollectionUnlockRules,
		Moved:      2,
		Warnings:   []*domain.ConsistencyWarning{{Source: "migrate", Detail: "3 and 03 differ"}},
	}, nil)
	h := NewSyncHandlers(syncer, collections, nil)

	w := serve(t, http.MethodPost, "/sync/migrate", "/sync/migrate", nil, h.HandleMigrateKeys())

	assert.Equal(t, http.StatusOK, w.Code)
	got := decodeBody[[]MigrationView](t, w)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Moved)
	assert.Len(t, got[0].Warnings, 1)
	syncer.AssertNumberOfCalls(t, "MigrateKeys", 1)
}

func TestSyncHandlers_Load(t *testing.T) {
	t.Run("Applies Snapshot", func(t *testing.T) {
		snap := reconcile.Snapshot{
			Rules:    catalog.DefaultRules(),
			Layout:   domain.ShopLayout{Keys: []string{"MachineGun1"}},
			LoadedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		}
		syncer := &MockSyncer{}
		syncer.On("Load", mock.Anything).Return(snap, nil)
		syncer.On("Session").Return(reconcile.SessionReady, snap, true)

		var applied []domain.UnlockRule
		h := NewSyncHandlers(syncer, nil, func(_ context.Context, s reconcile.Snapshot) { applied = s.Rules })

		w := serve(t, http.MethodPost, "/sync/load", "/sync/load", nil, h.HandleLoad())

		assert.Equal(t, http.StatusOK, w.Code)
		got := decodeBody[SessionView](t, w)
		assert.Equal(t, reconcile.SessionReady, got.State)
		assert.Equal(t, len(snap.Rules), got.Rules)
		assert.Len(t, applied, len(snap.Rules))
	})

	t.Run("Failure Does Not Apply", func(t *testing.T) {
		syncer := &MockSyncer{}
		syncer.On("Load", mock.Anything).Return(reconcile.Snapshot{}, &domain.RemoteError{Kind: domain.RemoteConnectivity, Err: errors.New("timeout")})

		applied := false
		h := NewSyncHandlers(syncer, nil, func(context.Context, reconcile.Snapshot) { applied = true })

		w := serve(t, http.MethodPost, "/sync/load", "/sync/load", nil, h.HandleLoad())

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.False(t, applied)
	})
}

func TestSyncHandlers_Status(t *testing.T) {
	syncer := &MockSyncer{}
	syncer.On("Session").Return(reconcile.SessionFailed, reconcile.Snapshot{}, false)
	syncer.On("LastError").Return(errors.New("store unavailable"))
	h := NewSyncHandlers(syncer, nil, nil)

	w := serve(t, http.MethodGet, "/sync/status", "/sync/status", nil, h.HandleStatus())

	assert.Equal(t, http.StatusOK, w.Code)
	got := decodeBody[SessionView](t, w)
	assert.Equal(t, reconcile.SessionFailed, got.State)
	assert.False(t, got.HasData)
	assert.Contains(t, got.Error, "store unavailable")
}
