package reconcile

import (
	"context"
	"fmt"
	"sort"

	"github.com/osse101/ArsenalSync_Go/internal/domain"
	"github.com/osse101/ArsenalSync_Go/internal/logger"
	"github.com/osse101/ArsenalSync_Go/internal/store"
)

// LoadRules reads every rule document. Documents with an ordinal outside the
// known set, whose key names a different ordinal, or that cannot be decoded,
// are dropped and reported as warnings. When several documents carry the
// same ordinal the one at the padded key wins.
func (r *Reconciler) LoadRules(ctx context.Context) ([]domain.UnlockRule, []*domain.ConsistencyWarning, error) {
	docs, err := r.store.Query(ctx, store.CollectionUnlockRules, store.Filter{})
	if err != nil {
		return nil, nil, err
	}

	log := logger.FromContext(ctx)
	rules := make([]domain.UnlockRule, 0, len(docs))
	keys := make(map[int]string, len(docs))
	slot := make(map[int]int, len(docs))
	var warnings []*domain.ConsistencyWarning
	drop := func(key, detail string) {
		warnings = append(warnings, &domain.ConsistencyWarning{Source: store.CollectionUnlockRules, Detail: key + ": " + detail})
		log.Warn(LogMsgRecordDropped, "collection", store.CollectionUnlockRules, "key", key, "reason", detail)
	}

	for _, doc := range docs {
		ordinal, ok := ordinalOf(doc.Record)
		if !ok {
			drop(doc.Key, WarnMissingOrdinal)
			continue
		}
		if !domain.TowerType(ordinal).Valid() {
			drop(doc.Key, fmt.Sprintf(WarnFmtUnknownOrdinal, ordinal))
			continue
		}
		if fromKey, ok := store.ParseOrdinalKey(doc.Key); !ok || fromKey != ordinal {
			drop(doc.Key, fmt.Sprintf(WarnFmtKeyOrdinalMismatch, ordinal))
			continue
		}
		var rule domain.UnlockRule
		if err := store.Decode(doc.Record, &rule); err != nil {
			drop(doc.Key, err.Error())
			continue
		}
		rule.Key = rule.Ordinal.Key()
		rule.Category = rule.Ordinal.Category()

		i, dup := slot[ordinal]
		if !dup {
			slot[ordinal] = len(rules)
			keys[ordinal] = doc.Key
			rules = append(rules, rule)
			continue
		}
		canonical := store.OrdinalKey(ordinal)
		if doc.Key != canonical {
			drop(doc.Key, fmt.Sprintf(WarnFmtShadowedKey, keys[ordinal]))
			continue
		}
		drop(keys[ordinal], fmt.Sprintf(WarnFmtShadowedKey, canonical))
		keys[ordinal] = doc.Key
		rules[i] = rule
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].Ordinal < rules[j].Ordinal })
	return rules, warnings, nil
}

// ordinalOf reads the ordinal field without trusting the document shape
func ordinalOf(rec store.Record) (int, bool) {
	switch v := rec[store.FieldOrdinal].(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	}
	return 0, false
}

// SaveRule writes the whole rule document, keeping the original creation
// timestamp when the document already exists
func (r *Reconciler) SaveRule(ctx context.Context, rule domain.UnlockRule) error {
	if !rule.Ordinal.Valid() {
		return domain.NewValidationError(domain.ValidationUnknownOrdinal, fmt.Sprint(int(rule.Ordinal)), "")
	}
	key := store.OrdinalKey(int(rule.Ordinal))

	rec, err := store.Encode(rule)
	if err != nil {
		return err
	}
	createdAt, err := r.existingCreatedAt(ctx, store.CollectionUnlockRules, key)
	if err != nil {
		return err
	}
	rec[store.FieldCreatedAt] = createdAt
	return r.store.Set(ctx, store.CollectionUnlockRules, key, rec)
}

func (r *Reconciler) existingCreatedAt(ctx context.Context, collection, key string) (any, error) {
	old, found, err := r.store.Get(ctx, collection, key)
	if err != nil {
		return nil, err
	}
	if found {
		if v, ok := old[store.FieldCreatedAt]; ok {
			return v, nil
		}
	}
	return r.timestamp(), nil
}

// LoadLayout reads the shop layout document
func (r *Reconciler) LoadLayout(ctx context.Context) (domain.ShopLayout, bool, error) {
	rec, found, err := r.store.Get(ctx, store.CollectionShopLayout, store.MainKey)
	if err != nil || !found {
		return domain.ShopLayout{}, false, err
	}

	var layout domain.ShopLayout
	if err := store.Decode(rec, &layout); err != nil {
		return domain.ShopLayout{}, false, fmt.Errorf("%s: %w", ErrMsgDecodeLayout, err)
	}

	kept := layout.Keys[:0]
	for _, k := range layout.Keys {
		if _, ok := domain.ParseTowerKey(k); ok {
			kept = append(kept, k)
			continue
		}
		logger.FromContext(ctx).Warn(LogMsgRecordDropped, "collection", store.CollectionShopLayout, "key", k, "reason", WarnUnknownTowerKey)
	}
	layout.Keys = kept
	return layout, true, nil
}

// SaveLayout replaces the shop layout document. A zero CreatedAt keeps the
// stored document's creation time.
func (r *Reconciler) SaveLayout(ctx context.Context, layout domain.ShopLayout) error {
	rec, err := store.Encode(layout)
	if err != nil {
		return err
	}
	if layout.CreatedAt.IsZero() {
		createdAt, err := r.existingCreatedAt(ctx, store.CollectionShopLayout, store.MainKey)
		if err != nil {
			return err
		}
		rec[store.FieldCreatedAt] = createdAt
	}
	return r.store.Set(ctx, store.CollectionShopLayout, store.MainKey, rec)
}

// LoadInventory reads one owner's inventory document
func (r *Reconciler) LoadInventory(ctx context.Context, ownerID string) (domain.InventorySnapshot, bool, error) {
	rec, found, err := r.store.Get(ctx, store.CollectionInventories, ownerID)
	if err != nil || !found {
		return domain.InventorySnapshot{}, false, err
	}
	var snap domain.InventorySnapshot
	if err := store.Decode(rec, &snap); err != nil {
		return domain.InventorySnapshot{}, false, fmt.Errorf("%s %s: %w", ErrMsgDecodeInventory, ownerID, err)
	}
	snap.OwnerID = ownerID
	return snap, true, nil
}

// SaveInventory replaces the whole inventory document. Callers pass a
// complete snapshot, never a partial one.
func (r *Reconciler) SaveInventory(ctx context.Context, snap domain.InventorySnapshot) error {
	if snap.OwnerID == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgEmptyOwner)
	}
	rec, err := store.Encode(snap)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, store.CollectionInventories, snap.OwnerID, rec)
}
