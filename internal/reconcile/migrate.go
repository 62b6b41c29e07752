package reconcile

import (
	"context"
	"fmt"
	"sort"

	"github.com/osse101/ArsenalSync_Go/internal/domain"
	"github.com/osse101/ArsenalSync_Go/internal/logger"
	"github.com/osse101/ArsenalSync_Go/internal/metrics"
	"github.com/osse101/ArsenalSync_Go/internal/store"
)

// MigrationResult summarizes one MigrateKeys run
type MigrationResult struct {
	Collection string `json:"collection"`
	// Moved counts documents copied to their padded key and removed from the old one
	Moved int `json:"moved"`
	// Deduplicated counts stale unpadded copies removed because the padded
	// document already held the same content
	Deduplicated int                          `json:"deduplicated"`
	Warnings     []*domain.ConsistencyWarning `json:"-"`
}

// MigrateKeys moves documents stored under unpadded ordinal keys ("7") to
// their padded form ("07"). The padded document is canonical when both exist.
// Running it again after a complete run writes nothing.
func (r *Reconciler) MigrateKeys(ctx context.Context, collection string) (MigrationResult, error) {
	log := logger.FromContext(ctx).With("collection", collection)
	result := MigrationResult{Collection: collection}

	docs, err := r.store.Query(ctx, collection, store.Filter{})
	if err != nil {
		return result, err
	}

	byKey := make(map[string]store.Record, len(docs))
	for _, d := range docs {
		byKey[d.Key] = d.Record
	}

	// Process in key order so repeated runs behave identically
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		ordinal, ok := store.ParseOrdinalKey(key)
		if !ok || store.IsCanonicalOrdinalKey(key) {
			continue
		}
		padded := store.OrdinalKey(ordinal)
		legacy := byKey[key]

		if canonical, exists := byKey[padded]; exists {
			if !store.Equal(canonical, legacy) {
				warn := &domain.ConsistencyWarning{
					Source: collection,
					Detail: fmt.Sprintf(WarnFmtKeyConflict, key, padded),
				}
				result.Warnings = append(result.Warnings, warn)
				log.Warn(LogMsgKeyConflict, "legacy_key", key, "key", padded)
				continue
			}
			if err := r.store.Delete(ctx, collection, key); err != nil {
				return result, err
			}
			result.Deduplicated++
			log.Info(LogMsgLegacyKeyRemoved, "legacy_key", key, "key", padded)
			continue
		}

		// Copy first so an interrupted move leaves two identical documents,
		// which the next run finishes through the branch above
		if err := r.store.Set(ctx, collection, padded, legacy); err != nil {
			return result, err
		}
		if err := r.store.Delete(ctx, collection, key); err != nil {
			return result, err
		}
		byKey[padded] = legacy
		result.Moved++
		metrics.KeysMigrated.WithLabelValues(collection).Inc()
		log.Info(LogMsgKeyMigrated, "legacy_key", key, "key", padded)
	}

	return result, nil
}
