package settlement

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

var ErrPoolClosed = errors.New("worker pool is closed")

type WorkerPoolI interface {
	AddTask(ctx context.Context, task Task) error
	Close()
}

type Task func() error

// WorkerPool runs tasks on a fixed number of goroutines. A task error is
// logged and does not stop the worker.
type WorkerPool struct {
	mu     sync.RWMutex
	closed bool
	pool   chan Task
}

func NewWorkerPool(size int) *WorkerPool {
	if size < 1 {
		size = 1
	}
	wp := &WorkerPool{pool: make(chan Task, size)}
	for i := 0; i < size; i++ {
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	for task := range wp.pool {
		if err := task(); err != nil {
			zap.L().Error("settlement task failed", zap.Error(err))
		}
	}
}

// AddTask blocks until a worker slot is free or ctx is done. It returns
// ErrPoolClosed once Close has been called.
func (wp *WorkerPool) AddTask(ctx context.Context, task Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	if wp.closed {
		return ErrPoolClosed
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case wp.pool <- task:
		return nil
	}
}

// Close stops accepting tasks and lets the workers drain the queue. It is
// safe to call more than once.
func (wp *WorkerPool) Close() {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	if wp.closed {
		return
	}
	wp.closed = true
	close(wp.pool)
}
