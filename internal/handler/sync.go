package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/ArsenalSync_Go/internal/logger"
	"github.com/osse101/ArsenalSync_Go/internal/reconcile"
)

// CollectionResultView is one collection's initialization result
type CollectionResultView struct {
	State   reconcile.CollectionState `json:"state"`
	Written int                       `json:"written"`
	Error   string                    `json:"error,omitempty"`
}

// MigrationView is one collection's key migration result
type MigrationView struct {
	reconcile.MigrationResult
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// SessionView reports the reconciler's cached session
type SessionView struct {
	State    reconcile.SessionState `json:"state"`
	HasData  bool                   `json:"has_data"`
	Rules    int                    `json:"rules"`
	Layout   []string               `json:"layout,omitempty"`
	Warnings []string               `json:"warnings,omitempty"`
	LoadedAt *time.Time             `json:"loaded_at,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

// SyncHandlers exposes the reconciler to operators
type SyncHandlers struct {
	syncer      Syncer
	collections []reconcile.Collection
	apply       func(ctx context.Context, snap reconcile.Snapshot)
}

// NewSyncHandlers creates the admin sync handlers. apply receives every
// successfully loaded snapshot; it may be nil.
func NewSyncHandlers(syncer Syncer, collections []reconcile.Collection, apply func(ctx context.Context, snap reconcile.Snapshot)) *SyncHandlers {
	return &SyncHandlers{syncer: syncer, collections: collections, apply: apply}
}

// HandleInitialize seeds every empty collection. Collections are independent,
// so the response is 200 with per-collection errors or 207 when some failed.
func (h *SyncHandlers) HandleInitialize() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results := h.syncer.InitializeAll(r.Context(), h.collections)
		out := make(map[string]CollectionResultView, len(results))
		status := http.StatusOK
		for name, res := range results {
			view := CollectionResultView{State: res.State, Written: res.Written}
			if res.Err != nil {
				view.Error = res.Err.Error()
				status = http.StatusMultiStatus
			}
			out[name] = view
		}
		respondJSON(w, status, out)
	}
}

// HandleMigrateKeys runs key migration over every ordinal-keyed collection
func (h *SyncHandlers) HandleMigrateKeys() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		status := http.StatusOK
		var out []MigrationView
		for _, name := range reconcile.OrdinalKeyed(h.collections) {
			res, err := h.syncer.MigrateKeys(r.Context(), name)
			view := MigrationView{MigrationResult: res}
			view.Collection = name
			for _, warn := range res.Warnings {
				view.Warnings = append(view.Warnings, warn.Error())
			}
			if len(view.Warnings) > 0 {
				log.Warn(LogMsgMigrationWarnings, "collection", name, "count", len(view.Warnings))
			}
			if err != nil {
				view.Error = err.Error()
				status = http.StatusMultiStatus
			}
			out = append(out, view)
		}
		respondJSON(w, status, out)
	}
}

// HandleLoad reloads rules and layout from the store
func (h *SyncHandlers) HandleLoad() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := h.syncer.Load(r.Context())
		if err != nil {
			respondServiceError(w, r, "load session", err)
			return
		}
		if h.apply != nil {
			h.apply(r.Context(), snap)
		}
		state, _, _ := h.syncer.Session()
		respondJSON(w, http.StatusOK, sessionView(state, snap, true, nil))
	}
}

// HandleStatus reports the session state without touching the store
func (h *SyncHandlers) HandleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, snap, ok := h.syncer.Session()
		respondJSON(w, http.StatusOK, sessionView(state, snap, ok, h.syncer.LastError()))
	}
}

func sessionView(state reconcile.SessionState, snap reconcile.Snapshot, hasData bool, err error) SessionView {
	view := SessionView{State: state, HasData: hasData}
	if hasData {
		view.Rules = len(snap.Rules)
		view.Layout = snap.Layout.Keys
		loadedAt := snap.LoadedAt
		view.LoadedAt = &loadedAt
		for _, warn := range snap.Warnings {
			view.Warnings = append(view.Warnings, warn.Error())
		}
	}
	if err != nil {
		view.Error = err.Error()
	}
	return view
}
