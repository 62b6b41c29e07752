// Package inventory holds the owned-tower aggregate and the service that
// loads, mutates and persists it.
package inventory

import (
	"fmt"
	"sort"
	"time"

	"github.com/osse101/ArsenalSync_Go/internal/domain"
)

// Inventory is one owner's set of owned towers and the active selection.
// At most MaxSelected entries are selected at any time, only owned entries
// can be selected, and each key is owned at most once.
type Inventory struct {
	ownerID     string
	entries     map[string]*domain.InventoryEntry
	maxSelected int
	createdAt   time.Time
	lastUpdated time.Time
	now         func() time.Time
}

// New creates an empty inventory
func New(ownerID string, maxSelected int, now func() time.Time) *Inventory {
	if maxSelected < 1 {
		maxSelected = domain.DefaultMaxSelected
	}
	if now == nil {
		now = time.Now
	}
	created := now().UTC()
	return &Inventory{
		ownerID:     ownerID,
		entries:     make(map[string]*domain.InventoryEntry),
		maxSelected: maxSelected,
		createdAt:   created,
		lastUpdated: created,
		now:         now,
	}
}

// FromSnapshot rebuilds an inventory from its persisted form. Duplicate keys
// keep the first entry. If the document selects more than maxSelected
// entries, the extras (in key order) are deselected.
func FromSnapshot(snap domain.InventorySnapshot, maxSelected int, now func() time.Time) *Inventory {
	inv := New(snap.OwnerID, maxSelected, now)
	if !snap.CreatedAt.IsZero() {
		inv.createdAt = snap.CreatedAt
	}
	if !snap.LastUpdated.IsZero() {
		inv.lastUpdated = snap.LastUpdated
	}
	for _, e := range snap.Entries {
		if e.DefinitionKey == "" {
			continue
		}
		if _, dup := inv.entries[e.DefinitionKey]; dup {
			continue
		}
		entry := e
		entry.OwnerID = snap.OwnerID
		inv.entries[e.DefinitionKey] = &entry
	}

	selected := 0
	for _, key := range inv.keys() {
		e := inv.entries[key]
		if !e.IsSelected {
			continue
		}
		if selected >= inv.maxSelected {
			e.IsSelected = false
			continue
		}
		selected++
	}
	return inv
}

// OwnerID returns the owner
func (inv *Inventory) OwnerID() string { return inv.ownerID }

// MaxSelected returns the selection quota
func (inv *Inventory) MaxSelected() int { return inv.maxSelected }

// AddEntry adds key. It returns false when key is already owned. The entry is
// selected only when selected is true and the quota has room.
func (inv *Inventory) AddEntry(key string, category domain.Category, selected bool) bool {
	if _, ok := inv.entries[key]; ok {
		return false
	}
	now := inv.now().UTC()
	inv.entries[key] = &domain.InventoryEntry{
		OwnerID:       inv.ownerID,
		DefinitionKey: key,
		Category:      category,
		AcquiredAt:    now,
		IsSelected:    selected && inv.CanSelectMore(),
	}
	inv.lastUpdated = now
	return true
}

// RemoveEntry removes key. It returns false when key is not owned. A vacated
// selection slot stays empty.
func (inv *Inventory) RemoveEntry(key string) bool {
	if _, ok := inv.entries[key]; !ok {
		return false
	}
	delete(inv.entries, key)
	inv.lastUpdated = inv.now().UTC()
	return true
}

// CheckSelection reports why keys cannot become the selection, or nil
func (inv *Inventory) CheckSelection(keys []string) error {
	set := dedupe(keys)
	if len(set) > inv.maxSelected {
		return domain.NewValidationError(domain.ValidationSelectionOverQuota, "",
			fmt.Sprintf("%d selected, maximum is %d", len(set), inv.maxSelected))
	}
	for _, k := range set {
		if _, ok := inv.entries[k]; !ok {
			return domain.NewValidationError(domain.ValidationNotOwned, k, "")
		}
	}
	return nil
}

// SetSelection makes keys exactly the selected set. It returns false without
// changing anything when keys exceed the quota or name an unowned entry.
func (inv *Inventory) SetSelection(keys []string) bool {
	if inv.CheckSelection(keys) != nil {
		return false
	}
	// Clear first so the selection never exceeds the quota mid-update
	for _, e := range inv.entries {
		e.IsSelected = false
	}
	for _, k := range dedupe(keys) {
		inv.entries[k].IsSelected = true
	}
	inv.lastUpdated = inv.now().UTC()
	return true
}

// IncrementUsage bumps the usage counter of key. Absent keys are ignored.
func (inv *Inventory) IncrementUsage(key string) bool {
	e, ok := inv.entries[key]
	if !ok {
		return false
	}
	e.UsageCount++
	return true
}

// HasEntry reports whether key is owned
func (inv *Inventory) HasEntry(key string) bool {
	_, ok := inv.entries[key]
	return ok
}

// Entry returns a copy of the entry for key
func (inv *Inventory) Entry(key string) (domain.InventoryEntry, bool) {
	e, ok := inv.entries[key]
	if !ok {
		return domain.InventoryEntry{}, false
	}
	return *e, true
}

// Entries returns copies of every entry in key order
func (inv *Inventory) Entries() []domain.InventoryEntry {
	out := make([]domain.InventoryEntry, 0, len(inv.entries))
	for _, k := range inv.keys() {
		out = append(out, *inv.entries[k])
	}
	return out
}

// SelectedEntries returns copies of the selected entries in key order
func (inv *Inventory) SelectedEntries() []domain.InventoryEntry {
	var out []domain.InventoryEntry
	for _, k := range inv.keys() {
		if e := inv.entries[k]; e.IsSelected {
			out = append(out, *e)
		}
	}
	return out
}

// SelectedKeys returns the selected keys in key order
func (inv *Inventory) SelectedKeys() []string {
	var out []string
	for _, e := range inv.SelectedEntries() {
		out = append(out, e.DefinitionKey)
	}
	return out
}

// SelectedCount returns the number of selected entries
func (inv *Inventory) SelectedCount() int {
	n := 0
	for _, e := range inv.entries {
		if e.IsSelected {
			n++
		}
	}
	return n
}

// CanSelectMore reports whether another entry can be selected
func (inv *Inventory) CanSelectMore() bool {
	return inv.SelectedCount() < inv.maxSelected
}

// Snapshot returns the complete persisted form
func (inv *Inventory) Snapshot() domain.InventorySnapshot {
	return domain.InventorySnapshot{
		OwnerID:     inv.ownerID,
		Entries:     inv.Entries(),
		MaxSelected: inv.maxSelected,
		LastUpdated: inv.lastUpdated,
		CreatedAt:   inv.createdAt,
	}
}

func (inv *Inventory) keys() []string {
	keys := make([]string, 0, len(inv.entries))
	for k := range inv.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func dedupe(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
