// Package handler exposes the engine over HTTP. Handlers depend on narrow
// interfaces so each route can be tested with a hand-written mock.
package handler

import (
	"context"

	"github.com/osse101/ArsenalSync_Go/internal/domain"
	"github.com/osse101/ArsenalSync_Go/internal/reconcile"
	"github.com/osse101/ArsenalSync_Go/internal/resolver"
	"github.com/osse101/ArsenalSync_Go/internal/unlock"
)

// InventoryService is the inventory surface used by the API
type InventoryService interface {
	Get(ctx context.Context, ownerID string) (domain.InventorySnapshot, error)
	AddEntry(ctx context.Context, ownerID, key string, selected bool) (domain.InventorySnapshot, error)
	RemoveEntry(ctx context.Context, ownerID, key string) (domain.InventorySnapshot, error)
	SetSelection(ctx context.Context, ownerID string, keys []string) (domain.InventorySnapshot, error)
	IncrementUsage(ctx context.Context, ownerID, key string) (domain.InventorySnapshot, error)
	Unlock(ctx context.Context, ownerID, key string) (domain.InventorySnapshot, unlock.KeyStatus, error)
}

// UnlockChecker answers "can unlock X" for one owner
type UnlockChecker interface {
	CanUnlockKey(ctx context.Context, ownerID, key string) (unlock.KeyStatus, error)
	StatusAll(ctx context.Context, ownerID string) ([]unlock.KeyStatus, error)
}

// DefinitionResolver turns selected entries into active definitions
type DefinitionResolver interface {
	ResolveForLevel(ctx context.Context, ownerID string, selected []domain.InventoryEntry, pool domain.DefinitionPool, level int) resolver.Resolution
}

// ProgressProvider supplies the progress level used for tier gating
type ProgressProvider interface {
	Snapshot(ctx context.Context, ownerID string) (domain.ProgressSnapshot, error)
}

// Catalog is the rule table plus the definition pool
type Catalog interface {
	Rule(key string) (domain.UnlockRule, bool)
	Rules() []domain.UnlockRule
	Update(rule domain.UnlockRule) (domain.UnlockRule, error)
	Pool() domain.DefinitionPool
}

// Syncer drives the reconciler from admin routes
type Syncer interface {
	InitializeAll(ctx context.Context, collections []reconcile.Collection) map[string]reconcile.CollectionResult
	MigrateKeys(ctx context.Context, collection string) (reconcile.MigrationResult, error)
	Load(ctx context.Context) (reconcile.Snapshot, error)
	Session() (reconcile.SessionState, reconcile.Snapshot, bool)
	LastError() error
	SaveRule(ctx context.Context, rule domain.UnlockRule) error
	LoadLayout(ctx context.Context) (domain.ShopLayout, bool, error)
	SaveLayout(ctx context.Context, layout domain.ShopLayout) error
}
