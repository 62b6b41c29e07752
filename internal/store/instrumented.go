package store

import (
	"context"
	"errors"
	"time"

	"github.com/osse101/ArsenalSync_Go/internal/domain"
	"github.com/osse101/ArsenalSync_Go/internal/logger"
	"github.com/osse101/ArsenalSync_Go/internal/metrics"
)

// Instrumented decorates a Store with call metrics and failure logging.
// Remote failures are logged with their kind so permission problems can be
// told apart from connectivity problems.
type Instrumented struct {
	inner Store
}

// NewInstrumented wraps inner
func NewInstrumented(inner Store) *Instrumented {
	return &Instrumented{inner: inner}
}

func (s *Instrumented) Exists(ctx context.Context, collection, key string) (bool, error) {
	start := time.Now()
	ok, err := s.inner.Exists(ctx, collection, key)
	s.observe(ctx, OpExists, collection, key, start, err)
	return ok, err
}

func (s *Instrumented) Get(ctx context.Context, collection, key string) (Record, bool, error) {
	start := time.Now()
	rec, ok, err := s.inner.Get(ctx, collection, key)
	s.observe(ctx, OpGet, collection, key, start, err)
	return rec, ok, err
}

func (s *Instrumented) Query(ctx context.Context, collection string, filter Filter) ([]Document, error) {
	start := time.Now()
	docs, err := s.inner.Query(ctx, collection, filter)
	s.observe(ctx, OpQuery, collection, "", start, err)
	return docs, err
}

func (s *Instrumented) Set(ctx context.Context, collection, key string, rec Record) error {
	start := time.Now()
	err := s.inner.Set(ctx, collection, key, rec)
	s.observe(ctx, OpSet, collection, key, start, err)
	return err
}

func (s *Instrumented) Delete(ctx context.Context, collection, key string) error {
	start := time.Now()
	err := s.inner.Delete(ctx, collection, key)
	s.observe(ctx, OpDelete, collection, key, start, err)
	return err
}

func (s *Instrumented) observe(ctx context.Context, op, collection, key string, start time.Time, err error) {
	metrics.StoreCallDuration.WithLabelValues(op, collection).Observe(time.Since(start).Seconds())

	outcome := metrics.OutcomeOK
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotInitialized):
		outcome = metrics.OutcomeNotInitialized
	default:
		outcome = metrics.OutcomeError
		kind := domain.RemoteUnknown
		var remote *domain.RemoteError
		if errors.As(err, &remote) {
			kind = remote.Kind
		}
		logger.FromContext(ctx).Error(LogMsgStoreCallFailed,
			"op", op,
			"collection", collection,
			"key", key,
			"kind", kind,
			"error", err)
	}
	metrics.StoreCallsTotal.WithLabelValues(op, collection, outcome).Inc()
}
