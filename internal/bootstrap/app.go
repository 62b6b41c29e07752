package bootstrap

import (
	"context"

	"github.com/osse101/ArsenalSync_Go/internal/catalog"
	"github.com/osse101/ArsenalSync_Go/internal/config"
	"github.com/osse101/ArsenalSync_Go/internal/event"
	"github.com/osse101/ArsenalSync_Go/internal/handler"
	"github.com/osse101/ArsenalSync_Go/internal/inventory"
	"github.com/osse101/ArsenalSync_Go/internal/progress"
	"github.com/osse101/ArsenalSync_Go/internal/reconcile"
	"github.com/osse101/ArsenalSync_Go/internal/resolver"
	"github.com/osse101/ArsenalSync_Go/internal/server"
	"github.com/osse101/ArsenalSync_Go/internal/unlock"
)

// App is the fully wired service
type App struct {
	Server     *server.Server
	Publisher  *event.ResilientPublisher
	Storage    *Storage
	Catalog    *catalog.Catalog
	Reconciler *reconcile.Reconciler
	Refresher  *CatalogRefresher
}

// Build opens storage, loads and syncs the catalog and wires every service
// behind the HTTP server. On error everything opened so far is released.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	cat, err := LoadCatalog(ctx, cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	storage, err := OpenStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	publisher, err := InitializeEventSystem(cfg)
	if err != nil {
		storage.Close()
		return nil, err
	}
	if err := RegisterEventHandlers(publisher); err != nil {
		storage.Close()
		_ = publisher.Shutdown(ctx)
		return nil, err
	}

	rec := reconcile.New(storage.Store)
	collections := reconcile.DefaultCollections(cat)
	SyncCatalog(ctx, cfg, rec, cat, collections)
	refresher := StartCatalogRefresh(cfg.SyncRefreshInterval, rec, cat)

	prog := progress.NewDocumentProvider(storage.Store)
	inv := inventory.NewService(rec, cat, prog, publisher, inventory.Config{
		MaxSelected: cfg.InventoryMaxSelected,
		CacheSize:   cfg.InventoryCacheSize,
		CacheTTL:    cfg.InventoryCacheTTL,
	})

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
	}, server.Deps{
		Inventory: inv,
		Checker:   unlock.NewChecker(cat, prog),
		Resolver:  resolver.New(publisher, cfg.ResolverTierLevels),
		Progress:  prog,
		Catalog:   cat,
		Sync:      handler.NewSyncHandlers(rec, collections, ApplySnapshot(cat)),
		Syncer:    rec,
		Health:    storage.Health,
	})

	return &App{
		Server:     srv,
		Publisher:  publisher,
		Storage:    storage,
		Catalog:    cat,
		Reconciler: rec,
		Refresher:  refresher,
	}, nil
}
