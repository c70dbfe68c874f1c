// Package parallel provides a bounded worker pool for fan-out work inside a
// single pipeline run, such as training independent trees of an ensemble.
package parallel

import (
	"fmt"
	"sync"
)

// WorkerPool manages a fixed set of worker goroutines consuming a task queue.
type WorkerPool struct {
	workers   int
	taskQueue chan func()
	wg        sync.WaitGroup
	once      sync.Once
	mu        sync.RWMutex // protects taskQueue from concurrent close during send
	closed    bool
}

// NewWorkerPool creates a pool with the given number of workers.
// Non-positive counts fall back to a single worker.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}

	pool := &WorkerPool{
		workers:   workers,
		taskQueue: make(chan func(), workers*2),
	}
	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}
	return pool
}

// Workers returns the pool size.
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		func() {
			defer func() {
				if r := recover(); r != nil {
					// A panicking task must not take the worker down
					fmt.Printf("worker panic recovered: %v\n", r)
				}
			}()
			task()
		}()
	}
}

// Submit adds a task to the pool.
// Returns false if the pool is already closed.
func (wp *WorkerPool) Submit(task func()) bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closed {
		return false
	}
	wp.taskQueue <- task
	return true
}

// Close stops accepting tasks and blocks until every queued task finished.
// Safe to call more than once.
func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		wp.mu.Lock()
		wp.closed = true
		close(wp.taskQueue)
		wp.mu.Unlock()
	})
	wp.wg.Wait()
}

// Run executes n index-addressed tasks across the pool and waits for all of
// them. Each task receives its own index, so results can be written to
// per-index slots without coordination.
func Run(workers, n int, task func(i int)) {
	if n <= 0 {
		return
	}
	pool := NewWorkerPool(workers)

	var done sync.WaitGroup
	done.Add(n)
	for i := 0; i < n; i++ {
		i := i
		pool.Submit(func() {
			defer done.Done()
			task(i)
		})
	}
	done.Wait()
	pool.Close()
}
