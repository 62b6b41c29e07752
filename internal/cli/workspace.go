package cli

import (
	"context"

	"github.com/osse101/ArsenalSync_Go/internal/bootstrap"
	"github.com/osse101/ArsenalSync_Go/internal/catalog"
	"github.com/osse101/ArsenalSync_Go/internal/reconcile"
)

// workspace is the store, catalog and reconciler a command operates on
type workspace struct {
	storage    *bootstrap.Storage
	catalog    *catalog.Catalog
	reconciler *reconcile.Reconciler
}

func (w *workspace) Close() {
	w.storage.Close()
}

func (w *workspace) collections() []reconcile.Collection {
	return reconcile.DefaultCollections(w.catalog)
}

// openWorkspace opens the configured store and catalog. The caller closes it.
func (o *RootOptions) openWorkspace(ctx context.Context) (*workspace, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	cat, err := bootstrap.LoadCatalog(ctx, cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	storage, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &workspace{
		storage:    storage,
		catalog:    cat,
		reconciler: reconcile.New(storage.Store),
	}, nil
}
