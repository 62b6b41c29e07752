// Package reconcile keeps the document store and the local rule, layout and
// inventory state consistent without overwriting data the store already holds.
package reconcile

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/ArsenalSync_Go/internal/logger"
	"github.com/osse101/ArsenalSync_Go/internal/metrics"
	"github.com/osse101/ArsenalSync_Go/internal/store"
)

// CollectionState tracks what initialization found in a collection
type CollectionState string

const (
	StateUnchecked   CollectionState = "unchecked"
	StateEmpty       CollectionState = "empty"
	StateInitialized CollectionState = "initialized"
	StateNonEmpty    CollectionState = "non_empty"
)

// Collection describes one remote collection and how to seed it
type Collection struct {
	Name string
	// Defaults returns the documents written into an empty collection. Nil
	// means the collection is never seeded.
	Defaults func() []store.Document
	// OrdinalKeyed collections use padded ordinal keys and take part in key migration
	OrdinalKeyed bool
}

// CollectionResult is the outcome of initializing one collection
type CollectionResult struct {
	Collection string          `json:"collection"`
	State      CollectionState `json:"state"`
	Written    int             `json:"written"`
	Err        error           `json:"-"`
}

// Reconciler owns every read and write the engine makes against the store
type Reconciler struct {
	store store.Store
	now   func() time.Time

	mu     sync.Mutex
	states map[string]CollectionState

	session sessionCache
}

// Option configures a Reconciler
type Option func(*Reconciler)

// WithClock overrides the time source used for creation timestamps
func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) { r.now = now }
}

// New creates a Reconciler on s
func New(s store.Store, opts ...Option) *Reconciler {
	r := &Reconciler{
		store:  s,
		now:    time.Now,
		states: make(map[string]CollectionState),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.session.state = SessionIdle
	return r
}

// State returns the last known initialization state of collection
func (r *Reconciler) State(collection string) CollectionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.states[collection]; ok {
		return st
	}
	return StateUnchecked
}

func (r *Reconciler) setState(collection string, st CollectionState) {
	r.mu.Lock()
	r.states[collection] = st
	r.mu.Unlock()
}

// InitializeIfEmpty seeds c with its defaults when it holds no documents. A
// collection with at least one document is never written to.
func (r *Reconciler) InitializeIfEmpty(ctx context.Context, c Collection) CollectionResult {
	log := logger.FromContext(ctx).With("collection", c.Name)
	result := CollectionResult{Collection: c.Name, State: r.State(c.Name)}
	defer func() {
		metrics.SyncCollectionResults.WithLabelValues(c.Name, resultLabel(result)).Inc()
	}()

	existing, err := r.store.Query(ctx, c.Name, store.Filter{Limit: 1})
	if err != nil {
		result.Err = err
		log.Error(LogMsgExistenceCheckFailed, "error", err)
		return result
	}
	if len(existing) > 0 {
		result.State = StateNonEmpty
		r.setState(c.Name, StateNonEmpty)
		log.Info(LogMsgCollectionNotEmpty)
		return result
	}

	result.State = StateEmpty
	r.setState(c.Name, StateEmpty)
	if c.Defaults == nil {
		return result
	}

	createdAt := r.timestamp()
	for _, doc := range c.Defaults() {
		rec := store.Clone(doc.Record)
		if rec == nil {
			rec = store.Record{}
		}
		rec[store.FieldCreatedAt] = createdAt
		if err := r.store.Set(ctx, c.Name, doc.Key, rec); err != nil {
			result.Err = fmt.Errorf("%s %s/%s: %w", ErrMsgSeedFailed, c.Name, doc.Key, err)
			log.Error(LogMsgSeedFailed, "key", doc.Key, "written", result.Written, "error", err)
			return result
		}
		result.Written++
		metrics.SyncDocumentsWritten.WithLabelValues(c.Name).Inc()
	}

	result.State = StateInitialized
	r.setState(c.Name, StateInitialized)
	log.Info(LogMsgCollectionInitialized, "written", result.Written)
	return result
}

// InitializeAll initializes every collection independently. Partial success
// is reported per collection.
func (r *Reconciler) InitializeAll(ctx context.Context, collections []Collection) map[string]CollectionResult {
	results := make(map[string]CollectionResult, len(collections))
	for _, c := range collections {
		results[c.Name] = r.InitializeIfEmpty(ctx, c)
	}
	return results
}

func (r *Reconciler) timestamp() string {
	return r.now().UTC().Format(time.RFC3339)
}

func resultLabel(res CollectionResult) string {
	if res.Err != nil {
		return metrics.OutcomeError
	}
	return string(res.State)
}

// FailedCollections lists the collections whose initialization returned an error
func FailedCollections(results map[string]CollectionResult) []string {
	var failed []string
	for name, res := range results {
		if res.Err != nil {
			failed = append(failed, name)
		}
	}
	return sortedStrings(failed)
}
