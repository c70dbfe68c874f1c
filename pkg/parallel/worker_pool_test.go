package parallel

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestWorkerPool_AllTasksRun(t *testing.T) {
	pool := NewWorkerPool(4)

	var counter int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		ok := pool.Submit(func() {
			defer wg.Done()
			atomic.AddInt64(&counter, 1)
		})
		if !ok {
			t.Fatal("Submit returned false on an open pool")
		}
	}
	wg.Wait()
	pool.Close()

	if counter != 100 {
		t.Errorf("Expected 100 tasks to run, got %d", counter)
	}
}

func TestWorkerPool_SubmitAfterClose(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()

	if pool.Submit(func() {}) {
		t.Error("Submit should return false after Close")
	}
}

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close() // must not panic
}

func TestWorkerPool_PanicRecovered(t *testing.T) {
	pool := NewWorkerPool(1)

	var wg sync.WaitGroup
	wg.Add(2)
	pool.Submit(func() {
		defer wg.Done()
		panic("boom")
	})

	// The worker must survive and run the next task
	var ran atomic.Bool
	pool.Submit(func() {
		defer wg.Done()
		ran.Store(true)
	})
	wg.Wait()
	pool.Close()

	if !ran.Load() {
		t.Error("Worker did not survive a panicking task")
	}
}

func TestWorkerPool_NonPositiveWorkers(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	if pool.Workers() != 1 {
		t.Errorf("Expected fallback to 1 worker, got %d", pool.Workers())
	}
}

func TestRun_IndexedTasks(t *testing.T) {
	results := make([]int, 50)
	Run(4, 50, func(i int) {
		results[i] = i * 2
	})

	for i, v := range results {
		if v != i*2 {
			t.Errorf("Slot %d: expected %d, got %d", i, i*2, v)
		}
	}
}

func TestRun_ZeroTasks(t *testing.T) {
	Run(4, 0, func(i int) {
		t.Error("Task should never run for n=0")
	})
}
