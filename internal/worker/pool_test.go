package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ArsenalSync_Go/internal/testing/leaktest"
)

func TestPool(t *testing.T) {
	var executed atomic.Int32
	pool := NewPool(TestWorkerCount, TestQueueSize)
	pool.Start()
	defer pool.Stop()

	job := JobFunc(func(ctx context.Context) error {
		executed.Add(1)
		return nil
	})
	require.True(t, pool.Enqueue(job))
	require.True(t, pool.Enqueue(job))

	assert.Eventually(t, func() bool { return executed.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestPool_FailingJobDoesNotStopWorker(t *testing.T) {
	var executed atomic.Int32
	pool := NewPool(1, TestQueueSize)
	pool.Start()
	defer pool.Stop()

	pool.Enqueue(JobFunc(func(ctx context.Context) error { return errors.New("boom") }))
	pool.Enqueue(JobFunc(func(ctx context.Context) error {
		executed.Add(1)
		return nil
	}))

	assert.Eventually(t, func() bool { return executed.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestPool_EnqueueDropsWhenFull(t *testing.T) {
	// Not started, so nothing drains the queue
	pool := NewPool(1, 1)
	noop := JobFunc(func(ctx context.Context) error { return nil })

	assert.True(t, pool.Enqueue(noop))
	assert.False(t, pool.Enqueue(noop))
}

func TestPool_StopCancelsRunningJobs(t *testing.T) {
	pool := NewPool(1, TestQueueSize)
	pool.Start()

	started := make(chan struct{})
	var cancelled atomic.Bool
	pool.Enqueue(JobFunc(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		cancelled.Store(true)
		return ctx.Err()
	}))
	<-started

	pool.Stop()

	assert.True(t, cancelled.Load())
	assert.False(t, pool.Enqueue(JobFunc(func(ctx context.Context) error { return nil })), "stopped pool rejects jobs")
	pool.Stop()
}

func TestPool_StopLeavesNoGoroutines(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		pool := NewPool(4, TestQueueSize)
		pool.Start()
		pool.Enqueue(JobFunc(func(ctx context.Context) error { return nil }))
		pool.Stop()
	})
}
