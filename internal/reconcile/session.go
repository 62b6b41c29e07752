package reconcile

import (
	"context"
	"time"

	"github.com/osse101/ArsenalSync_Go/internal/domain"
	"github.com/osse101/ArsenalSync_Go/internal/logger"
)

// SessionState is the load state of the cached rule and layout data
type SessionState string

const (
	SessionIdle    SessionState = "idle"
	SessionLoading SessionState = "loading"
	SessionReady   SessionState = "ready"
	SessionFailed  SessionState = "failed"
)

// Snapshot is the cached result of the last successful Load
type Snapshot struct {
	Rules    []domain.UnlockRule
	Layout   domain.ShopLayout
	Warnings []*domain.ConsistencyWarning
	LoadedAt time.Time
}

type sessionCache struct {
	state   SessionState
	last    Snapshot
	hasLast bool
	lastErr error
}

// Load reads rules and layout from the store. On failure the session moves to
// Failed, the previous good snapshot stays cached and is returned together
// with the error. Retrying is up to the caller.
func (r *Reconciler) Load(ctx context.Context) (Snapshot, error) {
	r.mu.Lock()
	r.session.state = SessionLoading
	r.mu.Unlock()

	snap, err := r.load(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.session.state = SessionFailed
		r.session.lastErr = err
		logger.FromContext(ctx).Error(LogMsgSessionLoadFailed, "error", err, "stale_cache", r.session.hasLast)
		return r.session.last, err
	}
	r.session.state = SessionReady
	r.session.last = snap
	r.session.hasLast = true
	r.session.lastErr = nil
	return snap, nil
}

func (r *Reconciler) load(ctx context.Context) (Snapshot, error) {
	rules, warnings, err := r.LoadRules(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	layout, _, err := r.LoadLayout(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Rules: rules, Layout: layout, Warnings: warnings, LoadedAt: r.now()}, nil
}

// Session reports the session state, the cached snapshot and whether one exists
func (r *Reconciler) Session() (SessionState, Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.state, r.session.last, r.session.hasLast
}

// LastError returns the error that moved the session to Failed, if any
func (r *Reconciler) LastError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.lastErr
}
