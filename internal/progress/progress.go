// Package progress adapts progression data owned by another system into the
// snapshots used for unlock checks.
package progress

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/ArsenalSync_Go/internal/domain"
	"github.com/osse101/ArsenalSync_Go/internal/logger"
	"github.com/osse101/ArsenalSync_Go/internal/store"
)

// DocumentProvider reads snapshots from the player_progress collection.
// Owners without a document start at level zero with no currency.
type DocumentProvider struct {
	store store.Store
}

// NewDocumentProvider creates a DocumentProvider
func NewDocumentProvider(s store.Store) *DocumentProvider {
	return &DocumentProvider{store: s}
}

func (p *DocumentProvider) Snapshot(ctx context.Context, ownerID string) (domain.ProgressSnapshot, error) {
	rec, found, err := p.store.Get(ctx, store.CollectionProgress, ownerID)
	if err != nil {
		return domain.ProgressSnapshot{}, err
	}
	if !found {
		logger.FromContext(ctx).Debug(LogMsgNoProgressDocument, "owner_id", ownerID)
		return domain.ProgressSnapshot{}, nil
	}

	var snap domain.ProgressSnapshot
	if err := store.Decode(rec, &snap); err != nil {
		return domain.ProgressSnapshot{}, fmt.Errorf("%s %s: %w", ErrMsgDecodeProgress, ownerID, err)
	}
	return snap, nil
}

// StaticProvider serves fixed snapshots, for tools and tests
type StaticProvider struct {
	mu        sync.RWMutex
	fallback  domain.ProgressSnapshot
	snapshots map[string]domain.ProgressSnapshot
}

// NewStaticProvider returns fallback for every owner without an explicit snapshot
func NewStaticProvider(fallback domain.ProgressSnapshot) *StaticProvider {
	return &StaticProvider{fallback: fallback, snapshots: make(map[string]domain.ProgressSnapshot)}
}

// Set stores the snapshot for ownerID
func (p *StaticProvider) Set(ownerID string, snap domain.ProgressSnapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshots[ownerID] = snap
}

func (p *StaticProvider) Snapshot(_ context.Context, ownerID string) (domain.ProgressSnapshot, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if snap, ok := p.snapshots[ownerID]; ok {
		return snap, nil
	}
	return p.fallback, nil
}
