package task

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/platform/logger"
)

func TestNewWorkerPool_DefaultsWorkerCount(t *testing.T) {
	t.Parallel()

	q := NewTaskQueue(1, nil)
	testCases := []struct {
		name  string
		count int
		want  int
	}{
		{name: "positive", count: 5, want: 5},
		{name: "zero", count: 0, want: 1},
		{name: "negative", count: -3, want: 1},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			pool := NewWorkerPool(q, WorkerPoolConfig{WorkerCount: tc.count}, nil)
			assert.Equal(t, tc.want, pool.workerCount)
		})
	}
}

func TestWorkerPool_DrainsQueueOnShutdown(t *testing.T) {
	t.Parallel()

	log, _ := logger.NewTestLogger()
	q := NewTaskQueue(10, log)
	pool := NewWorkerPool(q, WorkerPoolConfig{WorkerCount: 3}, log)

	var ran atomic.Int32
	for i := 0; i < 10; i++ {
		require.NoError(t, q.Enqueue(NewFuncTask("count", func(context.Context) error {
			ran.Add(1)
			return nil
		})))
	}

	pool.Start()
	q.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, pool.Shutdown(ctx))
	assert.Equal(t, int32(10), ran.Load())
}

func TestWorkerPool_ErrorHandler(t *testing.T) {
	t.Parallel()

	log, buf := logger.NewTestLogger()
	q := NewTaskQueue(4, log)
	pool := NewWorkerPool(q, WorkerPoolConfig{WorkerCount: 1}, log)

	boom := errors.New("boom")
	failed := make(chan error, 2)
	pool.SetErrorHandler(func(_ Task, err error) { failed <- err })

	require.NoError(t, q.Enqueue(NewFuncTask("fails", func(context.Context) error { return boom })))
	require.NoError(t, q.Enqueue(NewFuncTask("panics", func(context.Context) error { panic("kaboom") })))

	pool.Start()
	q.Close()
	require.NoError(t, pool.Shutdown(context.Background()))

	require.Len(t, failed, 2)
	assert.ErrorIs(t, <-failed, boom)
	assert.Contains(t, (<-failed).Error(), "task panicked: kaboom")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	var failures int
	for _, e := range entries {
		if e["msg"] == "task execution failed" {
			failures++
		}
	}
	assert.Equal(t, 2, failures)
}

func TestWorkerPool_TaskTimeout(t *testing.T) {
	t.Parallel()

	q := NewTaskQueue(1, nil)
	pool := NewWorkerPool(q, WorkerPoolConfig{WorkerCount: 1, TaskTimeout: 20 * time.Millisecond}, nil)

	failed := make(chan error, 1)
	pool.SetErrorHandler(func(_ Task, err error) { failed <- err })

	require.NoError(t, q.Enqueue(NewFuncTask("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})))

	pool.Start()
	q.Close()
	require.NoError(t, pool.Shutdown(context.Background()))
	assert.ErrorIs(t, <-failed, context.DeadlineExceeded)
}

func TestWorkerPool_ShutdownDeadline(t *testing.T) {
	t.Parallel()

	q := NewTaskQueue(1, nil)
	pool := NewWorkerPool(q, WorkerPoolConfig{WorkerCount: 1}, nil)

	started := make(chan struct{})
	require.NoError(t, q.Enqueue(NewFuncTask("blocks", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})))

	pool.Start()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, pool.Shutdown(ctx), context.DeadlineExceeded)
}
