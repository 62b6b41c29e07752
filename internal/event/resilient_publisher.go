package event

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/ArsenalSync_Go/internal/logger"
)

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries int
	RetryDelay time.Duration
	// DeadLetter receives deliveries that failed every retry. May be nil.
	DeadLetter *DeadLetterWriter
}

// ResilientPublisher wraps a Bus so a failing observer is retried on its own
// in the background, with exponential backoff, and dead-lettered when every
// retry fails. Observers that succeeded are never called twice for the same
// notification.
type ResilientPublisher struct {
	inner Bus
	cfg   ResilientConfig

	mu     sync.Mutex
	closed bool
	stop   chan struct{}
	wg     sync.WaitGroup
}

// NewResilientPublisher creates a new ResilientPublisher
func NewResilientPublisher(inner Bus, cfg ResilientConfig) *ResilientPublisher {
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	return &ResilientPublisher{
		inner: inner,
		cfg:   cfg,
		stop:  make(chan struct{}),
	}
}

// Publish delegates to the inner bus. Handler failures are taken over by the
// retry loop, so the error only reports failures of the inner bus itself.
func (p *ResilientPublisher) Publish(ctx context.Context, evt Event) error {
	return p.inner.Publish(ctx, evt)
}

// Subscribe registers handler on the inner bus behind the retry wrapper
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, p.wrap(handler))
}

func (p *ResilientPublisher) wrap(handler Handler) Handler {
	return func(ctx context.Context, evt Event) error {
		err := handler(ctx, evt)
		if err == nil {
			return nil
		}
		logger.FromContext(ctx).Warn(LogMsgHandlerRetrying,
			"type", evt.Type,
			"error", err,
			"retries", p.cfg.MaxRetries)
		p.retry(handler, evt, err)
		return nil
	}
}

func (p *ResilientPublisher) retry(handler Handler, evt Event, firstErr error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.deadLetter(evt, 1, firstErr)
		return
	}
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()

		lastErr := firstErr
		for attempt := 1; attempt <= p.cfg.MaxRetries; attempt++ {
			timer := time.NewTimer(p.cfg.RetryDelay << (attempt - 1))
			select {
			case <-p.stop:
				timer.Stop()
				p.deadLetter(evt, attempt, lastErr)
				return
			case <-timer.C:
			}

			// The publishing request is long gone; retries run detached
			if lastErr = handler(context.Background(), evt); lastErr == nil {
				logger.Info(LogMsgRetrySucceeded, "type", evt.Type, "attempt", attempt)
				return
			}
			logger.Warn(LogMsgRetryFailed, "type", evt.Type, "attempt", attempt, "error", lastErr)
		}
		p.deadLetter(evt, p.cfg.MaxRetries+1, lastErr)
	}()
}

func (p *ResilientPublisher) deadLetter(evt Event, attempts int, lastErr error) {
	if p.cfg.DeadLetter == nil {
		logger.Error(LogMsgDeliveryDropped, "type", evt.Type, "attempts", attempts, "error", lastErr)
		return
	}
	if err := p.cfg.DeadLetter.Write(evt, attempts, lastErr); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "type", evt.Type, "error", err)
		return
	}
	logger.Warn(LogMsgDeadLettered, "type", evt.Type, "attempts", attempts, "error", lastErr)
}

// Shutdown stops pending retries, dead-letters what they were carrying and
// closes the dead-letter file. It waits for the retry goroutines or ctx.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.stop)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	if p.cfg.DeadLetter != nil {
		return p.cfg.DeadLetter.Close()
	}
	return nil
}
