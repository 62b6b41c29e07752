package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"github.com/osse101/ArsenalSync_Go/internal/catalog"
	"github.com/osse101/ArsenalSync_Go/internal/reconcile"
	"github.com/osse101/ArsenalSync_Go/internal/scheduler"
	"github.com/osse101/ArsenalSync_Go/internal/worker"
)

// CatalogRefresher reloads the stored catalog on a fixed interval so rule
// edits made through another instance reach this one
type CatalogRefresher struct {
	pool      *worker.Pool
	scheduler *scheduler.Scheduler
}

// RefreshCatalogJob reloads rules from the store into cat. A failed load
// keeps the current rules.
func RefreshCatalogJob(rec *reconcile.Reconciler, cat *catalog.Catalog) worker.Job {
	apply := ApplySnapshot(cat)
	return worker.JobFunc(func(ctx context.Context) error {
		snap, err := rec.Load(ctx)
		if err != nil {
			return err
		}
		apply(ctx, snap)
		return nil
	})
}

// StartCatalogRefresh schedules RefreshCatalogJob every interval. It returns
// nil when interval is not positive.
func StartCatalogRefresh(interval time.Duration, rec *reconcile.Reconciler, cat *catalog.Catalog) *CatalogRefresher {
	if interval <= 0 {
		return nil
	}
	pool := worker.NewPool(RefreshWorkers, RefreshQueueSize)
	pool.Start()
	sched := scheduler.New(pool)
	sched.Schedule(interval, RefreshCatalogJob(rec, cat))
	slog.Info(LogMsgRefreshScheduled, "interval", interval)
	return &CatalogRefresher{pool: pool, scheduler: sched}
}

// Stop halts the schedule and cancels an in-flight reload
func (r *CatalogRefresher) Stop() {
	if r == nil {
		return
	}
	r.scheduler.Stop()
	r.pool.Stop()
}
