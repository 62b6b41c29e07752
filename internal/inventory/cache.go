package inventory

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/ArsenalSync_Go/internal/domain"
)

// CacheSchemaVersion invalidates cached snapshots written by an older layout
const CacheSchemaVersion = "1"

type cachedInventory struct {
	Version  string
	Snapshot domain.InventorySnapshot
	CachedAt time.Time
}

// snapshotCache keeps recently used inventories so reads skip the store
type snapshotCache struct {
	lru *expirable.LRU[string, *cachedInventory]
}

func newSnapshotCache(size int, ttl time.Duration) *snapshotCache {
	return &snapshotCache{lru: expirable.NewLRU[string, *cachedInventory](size, nil, ttl)}
}

func (c *snapshotCache) Get(ownerID string) (domain.InventorySnapshot, bool) {
	entry, ok := c.lru.Get(ownerID)
	if !ok {
		return domain.InventorySnapshot{}, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(ownerID)
		return domain.InventorySnapshot{}, false
	}
	return cloneSnapshot(entry.Snapshot), true
}

func (c *snapshotCache) Set(snap domain.InventorySnapshot) {
	c.lru.Add(snap.OwnerID, &cachedInventory{
		Version:  CacheSchemaVersion,
		Snapshot: cloneSnapshot(snap),
		CachedAt: time.Now(),
	})
}

func (c *snapshotCache) Invalidate(ownerID string) {
	c.lru.Remove(ownerID)
}

func (c *snapshotCache) Len() int {
	return c.lru.Len()
}

func cloneSnapshot(snap domain.InventorySnapshot) domain.InventorySnapshot {
	snap.Entries = append([]domain.InventoryEntry(nil), snap.Entries...)
	return snap
}
