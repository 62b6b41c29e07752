package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	"github.com/osse101/ArsenalSync_Go/internal/catalog"
	"github.com/osse101/ArsenalSync_Go/internal/config"
	"github.com/osse101/ArsenalSync_Go/internal/logger"
	"github.com/osse101/ArsenalSync_Go/internal/reconcile"
)

// LoadCatalog reads the operator catalog file. A missing file falls back to
// the built-in rules; an invalid one is an error.
func LoadCatalog(ctx context.Context, path string) (*catalog.Catalog, error) {
	cat, err := catalog.LoadFile(ctx, path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn(LogMsgCatalogFileMissing, "path", path)
		return catalog.NewDefault(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}
	return cat, nil
}

// SyncCatalog seeds every empty collection, optionally migrates ordinal keys
// and then loads the stored catalog into cat. Failures are logged and leave
// the file catalog in place; the admin sync routes can retry later.
func SyncCatalog(ctx context.Context, cfg *config.Config, rec *reconcile.Reconciler, cat *catalog.Catalog, collections []reconcile.Collection) {
	if !cfg.SyncOnBoot {
		slog.Info(LogMsgSyncSkipped)
		return
	}

	results := rec.InitializeAll(ctx, collections)
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		res := results[name]
		if res.Err != nil {
			slog.Error(LogMsgCollectionInitFailed, "collection", name, "state", res.State, "error", res.Err)
			continue
		}
		slog.Info(LogMsgCollectionInitialized, "collection", name, "state", res.State, "written", res.Written)
	}

	if cfg.SyncMigrateKeys {
		for _, name := range reconcile.OrdinalKeyed(collections) {
			res, err := rec.MigrateKeys(ctx, name)
			if err != nil {
				slog.Error(LogMsgKeyMigrationFailed, "collection", name, "error", err)
				continue
			}
			slog.Info(LogMsgKeysMigrated, "collection", name, "moved", res.Moved, "deduplicated", res.Deduplicated)
		}
	}

	snap, err := rec.Load(ctx)
	if err != nil {
		slog.Warn(LogMsgSessionLoadFailed, "error", err)
		return
	}
	ApplySnapshot(cat)(ctx, snap)
}

// ApplySnapshot returns the hook that swaps a loaded rule table into cat.
// An empty snapshot leaves the current rules alone.
func ApplySnapshot(cat *catalog.Catalog) func(ctx context.Context, snap reconcile.Snapshot) {
	return func(ctx context.Context, snap reconcile.Snapshot) {
		log := logger.FromContext(ctx)
		for _, w := range snap.Warnings {
			log.Warn(LogMsgConsistencyWarning, "source", w.Source, "detail", w.Detail)
		}
		if len(snap.Rules) == 0 {
			return
		}
		for _, err := range cat.Replace(snap.Rules) {
			log.Warn(LogMsgRuleSkipped, "error", err)
		}
		log.Info(LogMsgSessionLoaded, "rules", len(snap.Rules), "layout", len(snap.Layout.Keys))
	}
}
