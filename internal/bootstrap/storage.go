package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/ArsenalSync_Go/internal/config"
	"github.com/osse101/ArsenalSync_Go/internal/database"
	pgstore "github.com/osse101/ArsenalSync_Go/internal/database/postgres"
	sqlitestore "github.com/osse101/ArsenalSync_Go/internal/database/sqlite"
	"github.com/osse101/ArsenalSync_Go/internal/domain"
	"github.com/osse101/ArsenalSync_Go/internal/handler"
	"github.com/osse101/ArsenalSync_Go/internal/store"
	"github.com/osse101/ArsenalSync_Go/internal/store/memory"
)

// Storage is the opened document store with its readiness probe
type Storage struct {
	Store  store.Store
	Health handler.HealthChecker
	close  func()
}

// Close releases the backing connection, if any
func (s *Storage) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStorage opens the store selected by cfg.StoreDriver, applies its
// migrations and wraps it with call metrics
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	s, err := openDriver(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s.Store = store.NewInstrumented(s.Store)
	slog.Info(LogMsgStoreOpened, "driver", cfg.StoreDriver)
	return s, nil
}

func openDriver(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		return &Storage{Store: memory.New(), Health: alwaysReady()}, nil

	case config.StoreDriverNone:
		return &Storage{
			Store: store.NewNoopStore(),
			Health: handler.HealthCheckFunc(func(context.Context) error {
				return domain.ErrNotInitialized
			}),
		}, nil

	case config.StoreDriverSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, DirPermission); err != nil {
				return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDBDir, err)
			}
		}
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenSQLite, err)
		}
		if err := database.MigrateSQLite(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		return &Storage{
			Store:  sqlitestore.NewDocumentStore(db),
			Health: handler.HealthCheckFunc(db.PingContext),
			close:  func() { _ = db.Close() },
		}, nil

	case config.StoreDriverPostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolConfig{
			MaxConns:    cfg.DBMaxConns,
			MaxConnIdle: cfg.DBMaxConnIdle,
			MaxConnLife: cfg.DBMaxConnLife,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenPool, err)
		}
		if err := database.MigratePostgres(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		return &Storage{
			Store:  pgstore.NewDocumentStore(pool),
			Health: handler.HealthCheckFunc(pool.Ping),
			close:  pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("%s: %q", ErrMsgUnknownDriver, cfg.StoreDriver)
}

func alwaysReady() handler.HealthChecker {
	return handler.HealthCheckFunc(func(context.Context) error { return nil })
}
