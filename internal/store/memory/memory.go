// Package memory provides an in-memory document store used for tests,
// ephemeral runs and fault injection.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/osse101/ArsenalSync_Go/internal/store"
)

// Compile-time contract assertion
var _ store.Store = (*Store)(nil)

// Store keeps documents in nested maps. Records are deep-copied on the way in
// and out so callers can never alias stored state.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]store.Record
	failures    map[string]error
	writes      int
}

// New creates an empty store
func New() *Store {
	return &Store{
		collections: make(map[string]map[string]store.Record),
		failures:    make(map[string]error),
	}
}

// FailOn makes every call of op return err until cleared with a nil err.
// The error is wrapped as a remote failure exactly like a real backend would.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// Writes returns the number of successful Set and Delete calls
func (s *Store) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// Seed stores rec without counting it as a write
func (s *Store) Seed(collection, key string, rec store.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bucket(collection)[key] = store.Clone(rec)
}

// Snapshot returns a copy of every document in collection keyed by document key
func (s *Store) Snapshot(collection string) map[string]store.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]store.Record, len(s.collections[collection]))
	for k, v := range s.collections[collection] {
		out[k] = store.Clone(v)
	}
	return out
}

func (s *Store) Exists(ctx context.Context, collection, key string) (bool, error) {
	if err := s.check(ctx, store.OpExists, collection, key); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.collections[collection][key]
	return ok, nil
}

func (s *Store) Get(ctx context.Context, collection, key string) (store.Record, bool, error) {
	if err := s.check(ctx, store.OpGet, collection, key); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.collections[collection][key]
	if !ok {
		return nil, false, nil
	}
	return store.Clone(rec), true, nil
}

func (s *Store) Query(ctx context.Context, collection string, filter store.Filter) ([]store.Document, error) {
	if err := s.check(ctx, store.OpQuery, collection, ""); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	bucket := s.collections[collection]
	keys := make([]string, 0, len(bucket))
	for k := range bucket {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var docs []store.Document
	for _, k := range keys {
		if !store.Matches(bucket[k], filter) {
			continue
		}
		docs = append(docs, store.Document{Key: k, Record: store.Clone(bucket[k])})
		if filter.Limit > 0 && len(docs) >= filter.Limit {
			break
		}
	}
	return docs, nil
}

func (s *Store) Set(ctx context.Context, collection, key string, rec store.Record) error {
	if err := s.check(ctx, store.OpSet, collection, key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bucket(collection)[key] = store.Clone(rec)
	s.writes++
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, key string) error {
	if err := s.check(ctx, store.OpDelete, collection, key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections[collection], key)
	s.writes++
	return nil
}

func (s *Store) check(ctx context.Context, op, collection, key string) error {
	if err := ctx.Err(); err != nil {
		return store.NewRemoteError(op, collection, key, err)
	}
	s.mu.RLock()
	err := s.failures[op]
	s.mu.RUnlock()
	if err != nil {
		return store.NewRemoteError(op, collection, key, err)
	}
	return nil
}

// bucket returns the collection map, creating it. Caller must hold the write lock.
func (s *Store) bucket(collection string) map[string]store.Record {
	b, ok := s.collections[collection]
	if !ok {
		b = make(map[string]store.Record)
		s.collections[collection] = b
	}
	return b
}
