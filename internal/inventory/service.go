package inventory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/osse101/ArsenalSync_Go/internal/concurrency"
	"github.com/osse101/ArsenalSync_Go/internal/domain"
	"github.com/osse101/ArsenalSync_Go/internal/event"
	"github.com/osse101/ArsenalSync_Go/internal/logger"
	"github.com/osse101/ArsenalSync_Go/internal/metrics"
	"github.com/osse101/ArsenalSync_Go/internal/unlock"
)

// Repository persists whole inventory documents
type Repository interface {
	LoadInventory(ctx context.Context, ownerID string) (domain.InventorySnapshot, bool, error)
	SaveInventory(ctx context.Context, snap domain.InventorySnapshot) error
}

// RuleSource is the part of the catalog the service reads
type RuleSource interface {
	Rule(key string) (domain.UnlockRule, bool)
	CategoryOf(key string) (domain.Category, bool)
}

// Config tunes the service
type Config struct {
	MaxSelected int
	CacheSize   int
	CacheTTL    time.Duration
}

// Service runs inventory mutations one owner at a time and persists every
// change as a full document
type Service struct {
	repo     Repository
	rules    RuleSource
	progress unlock.ProgressProvider
	bus      event.Bus
	cfg      Config
	cache    *snapshotCache
	locks    *concurrency.LockManager
	now      func() time.Time
}

// NewService creates a Service. bus may be nil.
func NewService(repo Repository, rules RuleSource, progress unlock.ProgressProvider, bus event.Bus, cfg Config) *Service {
	if cfg.MaxSelected < 1 {
		cfg.MaxSelected = domain.DefaultMaxSelected
	}
	if cfg.CacheSize < 1 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	return &Service{
		repo:     repo,
		rules:    rules,
		progress: progress,
		bus:      bus,
		cfg:      cfg,
		cache:    newSnapshotCache(cfg.CacheSize, cfg.CacheTTL),
		locks:    concurrency.NewLockManager(),
		now:      time.Now,
	}
}

// Get returns the owner's inventory, creating an empty one in memory on first
// access. Nothing is written until the first mutation.
func (s *Service) Get(ctx context.Context, ownerID string) (domain.InventorySnapshot, error) {
	if ownerID == "" {
		return domain.InventorySnapshot{}, fmt.Errorf("%w: empty owner id", domain.ErrInvalidInput)
	}
	unlockOwner := s.locks.Lock(ownerID)
	defer unlockOwner()

	inv, err := s.load(ctx, ownerID)
	if err != nil {
		return domain.InventorySnapshot{}, err
	}
	return inv.Snapshot(), nil
}

// AddEntry adds key to the owner's inventory
func (s *Service) AddEntry(ctx context.Context, ownerID, key string, selected bool) (domain.InventorySnapshot, error) {
	return s.mutate(ctx, ownerID, func(inv *Inventory) (bool, error) {
		category, _ := s.rules.CategoryOf(key)
		if !inv.AddEntry(key, category, selected) {
			return false, domain.NewValidationError(domain.ValidationAlreadyOwned, key, "")
		}
		return true, nil
	})
}

// RemoveEntry removes key from the owner's inventory
func (s *Service) RemoveEntry(ctx context.Context, ownerID, key string) (domain.InventorySnapshot, error) {
	return s.mutate(ctx, ownerID, func(inv *Inventory) (bool, error) {
		if !inv.RemoveEntry(key) {
			return false, domain.NewValidationError(domain.ValidationNotOwned, key, "")
		}
		return true, nil
	})
}

// SetSelection replaces the owner's selection with keys
func (s *Service) SetSelection(ctx context.Context, ownerID string, keys []string) (domain.InventorySnapshot, error) {
	return s.mutate(ctx, ownerID, func(inv *Inventory) (bool, error) {
		if err := inv.CheckSelection(keys); err != nil {
			return false, err
		}
		return inv.SetSelection(keys), nil
	})
}

// IncrementUsage bumps the usage counter of key. Unowned keys are ignored.
func (s *Service) IncrementUsage(ctx context.Context, ownerID, key string) (domain.InventorySnapshot, error) {
	return s.mutate(ctx, ownerID, func(inv *Inventory) (bool, error) {
		return inv.IncrementUsage(key), nil
	})
}

// Unlock buys key for the owner: the unlock rule must allow it, then the
// tower is added. The returned status explains a rejection.
func (s *Service) Unlock(ctx context.Context, ownerID, key string) (domain.InventorySnapshot, unlock.KeyStatus, error) {
	rule, ok := s.rules.Rule(key)
	if !ok {
		return domain.InventorySnapshot{}, unlock.KeyStatus{}, fmt.Errorf("%w: '%s'", domain.ErrRuleNotFound, key)
	}
	progress, err := s.progress.Snapshot(ctx, ownerID)
	if err != nil {
		return domain.InventorySnapshot{}, unlock.KeyStatus{}, err
	}

	status := unlock.Evaluate(&rule, progress)
	if !status.CanUnlock {
		err := domain.NewValidationError(domain.ValidationLocked, rule.Key, status.Status.Text)
		s.reject(ctx, ownerID, err)
		return domain.InventorySnapshot{}, status, err
	}

	snap, err := s.AddEntry(ctx, ownerID, rule.Key, false)
	return snap, status, err
}

// mutate loads the aggregate, applies fn to a copy and persists the result.
// The cached copy only changes after a successful write.
func (s *Service) mutate(ctx context.Context, ownerID string, fn func(inv *Inventory) (bool, error)) (domain.InventorySnapshot, error) {
	if ownerID == "" {
		return domain.InventorySnapshot{}, fmt.Errorf("%w: empty owner id", domain.ErrInvalidInput)
	}
	unlockOwner := s.locks.Lock(ownerID)
	defer unlockOwner()

	inv, err := s.load(ctx, ownerID)
	if err != nil {
		return domain.InventorySnapshot{}, err
	}
	before := inv.SelectedKeys()

	changed, err := fn(inv)
	if err != nil {
		s.reject(ctx, ownerID, err)
		return domain.InventorySnapshot{}, err
	}
	if !changed {
		return inv.Snapshot(), nil
	}

	snap := inv.Snapshot()
	if err := s.repo.SaveInventory(ctx, snap); err != nil {
		s.cache.Invalidate(ownerID)
		logger.FromContext(ctx).Error(LogMsgPersistFailed, "owner_id", ownerID, "error", err)
		return domain.InventorySnapshot{}, fmt.Errorf("%s: %w", ErrMsgPersistFailed, err)
	}
	s.cache.Set(snap)
	logger.FromContext(ctx).Debug(LogMsgInventoryPersisted, "owner_id", ownerID, "entries", len(snap.Entries))

	event.Notify(ctx, s.bus, event.NewInventoryChangedEvent(snap))
	if after := inv.SelectedKeys(); !slices.Equal(before, after) {
		event.Notify(ctx, s.bus, event.NewSelectionChangedEvent(ownerID, after))
	}
	return snap, nil
}

// load returns a private copy of the owner's aggregate
func (s *Service) load(ctx context.Context, ownerID string) (*Inventory, error) {
	if snap, ok := s.cache.Get(ownerID); ok {
		return FromSnapshot(snap, s.cfg.MaxSelected, s.now), nil
	}

	snap, found, err := s.repo.LoadInventory(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgLoadFailed, err)
	}
	if !found {
		logger.FromContext(ctx).Debug(LogMsgInventoryCreated, "owner_id", ownerID)
		inv := New(ownerID, s.cfg.MaxSelected, s.now)
		s.cache.Set(inv.Snapshot())
		return inv, nil
	}

	snap.OwnerID = ownerID
	inv := FromSnapshot(snap, s.cfg.MaxSelected, s.now)
	s.cache.Set(inv.Snapshot())
	return inv, nil
}

func (s *Service) reject(ctx context.Context, ownerID string, err error) {
	kind := string(domain.Classify(err))
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		kind = string(verr.Kind)
	}
	metrics.InventoryRejections.WithLabelValues(kind).Inc()
	logger.FromContext(ctx).Info(LogMsgMutationRejected, "owner_id", ownerID, "reason", kind, "error", err)
}
