package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/ArsenalSync_Go/internal/domain"
	"github.com/osse101/ArsenalSync_Go/internal/reconcile"
	"github.com/osse101/ArsenalSync_Go/internal/resolver"
	"github.com/osse101/ArsenalSync_Go/internal/unlock"
)

type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) Get(ctx context.Context, ownerID string) (domain.InventorySnapshot, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(domain.InventorySnapshot), args.Error(1)
}

func (m *MockInventoryService) AddEntry(ctx context.Context, ownerID, key string, selected bool) (domain.InventorySnapshot, error) {
	args := m.Called(ctx, ownerID, key, selected)
	return args.Get(0).(domain.InventorySnapshot), args.Error(1)
}

func (m *MockInventoryService) RemoveEntry(ctx context.Context, ownerID, key string) (domain.InventorySnapshot, error) {
	args := m.Called(ctx, ownerID, key)
	return args.Get(0).(domain.InventorySnapshot), args.Error(1)
}

func (m *MockInventoryService) SetSelection(ctx context.Context, ownerID string, keys []string) (domain.InventorySnapshot, error) {
	args := m.Called(ctx, ownerID, keys)
	return args.Get(0).(domain.InventorySnapshot), args.Error(1)
}

func (m *MockInventoryService) IncrementUsage(ctx context.Context, ownerID, key string) (domain.InventorySnapshot, error) {
	args := m.Called(ctx, ownerID, key)
	return args.Get(0).(domain.InventorySnapshot), args.Error(1)
}

func (m *MockInventoryService) Unlock(ctx context.Context, ownerID, key string) (domain.InventorySnapshot, unlock.KeyStatus, error) {
	args := m.Called(ctx, ownerID, key)
	return args.Get(0).(domain.InventorySnapshot), args.Get(1).(unlock.KeyStatus), args.Error(2)
}

type MockUnlockChecker struct {
	mock.Mock
}

func (m *MockUnlockChecker) CanUnlockKey(ctx context.Context, ownerID, key string) (unlock.KeyStatus, error) {
	args := m.Called(ctx, ownerID, key)
	return args.Get(0).(unlock.KeyStatus), args.Error(1)
}

func (m *MockUnlockChecker) StatusAll(ctx context.Context, ownerID string) ([]unlock.KeyStatus, error) {
	args := m.Called(ctx, ownerID)
	statuses, _ := args.Get(0).([]unlock.KeyStatus)
	return statuses, args.Error(1)
}

type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) ResolveForLevel(ctx context.Context, ownerID string, selected []domain.InventoryEntry, pool domain.DefinitionPool, level int) resolver.Resolution {
	args := m.Called(ctx, ownerID, selected, pool, level)
	return args.Get(0).(resolver.Resolution)
}

type MockProgress struct {
	mock.Mock
}

func (m *MockProgress) Snapshot(ctx context.Context, ownerID string) (domain.ProgressSnapshot, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(domain.ProgressSnapshot), args.Error(1)
}

type MockSyncer struct {
	mock.Mock
}

func (m *MockSyncer) InitializeAll(ctx context.Context, collections []reconcile.Collection) map[string]reconcile.CollectionResult {
	args := m.Called(ctx, collections)
	return args.Get(0).(map[string]reconcile.CollectionResult)
}

func (m *MockSyncer) MigrateKeys(ctx context.Context, collection string) (reconcile.MigrationResult, error) {
	args := m.Called(ctx, collection)
	return args.Get(0).(reconcile.MigrationResult), args.Error(1)
}

func (m *MockSyncer) Load(ctx context.Context) (reconcile.Snapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(reconcile.Snapshot), args.Error(1)
}

func (m *MockSyncer) Session() (reconcile.SessionState, reconcile.Snapshot, bool) {
	args := m.Called()
	return args.Get(0).(reconcile.SessionState), args.Get(1).(reconcile.Snapshot), args.Bool(2)
}

func (m *MockSyncer) LastError() error {
	return m.Called().Error(0)
}

func (m *MockSyncer) SaveRule(ctx context.Context, rule domain.UnlockRule) error {
	return m.Called(ctx, rule).Error(0)
}

func (m *MockSyncer) SaveLayout(ctx context.Context, layout domain.ShopLayout) error {
	return m.Called(ctx, layout).Error(0)
}

func (m *MockSyncer) LoadLayout(ctx context.Context) (domain.ShopLayout, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.ShopLayout), args.Bool(1), args.Error(2)
}
