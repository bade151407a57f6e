package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestWorkerPool_RunsAllTasks(t *testing.T) {
	pool := NewWorkerPool(4, 100)
	out := pool.Run(context.Background())

	var ran atomic.Int64
	for i := 0; i < 100; i++ {
		pool.Submit(func(ctx context.Context) error {
			ran.Add(1)
			return nil
		})
	}
	pool.Close()

	results := 0
	for res := range out {
		if res.Err != nil {
			t.Fatalf("unexpected err: %v", res.Err)
		}
		results++
	}

	if ran.Load() != 100 {
		t.Fatalf("expected 100 tasks to run, got %d", ran.Load())
	}
	if results != 100 {
		t.Fatalf("expected 100 results, got %d", results)
	}
}

func TestWorkerPool_ReportsTaskErrors(t *testing.T) {
	pool := NewWorkerPool(2, 10)
	out := pool.Run(context.Background())

	boom := errors.New("boom")
	for i := 0; i < 10; i++ {
		i := i
		pool.Submit(func(ctx context.Context) error {
			if i%2 == 0 {
				return boom
			}
			return nil
		})
	}
	pool.Close()

	failed := 0
	for res := range out {
		if res.Err != nil {
			if !errors.Is(res.Err, boom) {
				t.Fatalf("unexpected err: %v", res.Err)
			}
			failed++
		}
	}
	if failed != 5 {
		t.Fatalf("expected 5 failures, got %d", failed)
	}
}

func TestWorkerPool_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewWorkerPool(2, 4)
	out := pool.Run(ctx)
	pool.Close()

	// drained without deadlock; a cancelled pool may emit zero results
	for range out {
	}
}

func TestWorkerPool_ZeroWorkersClamped(t *testing.T) {
	pool := NewWorkerPool(0, 0)
	out := pool.Run(context.Background())

	done := make(chan struct{})
	go func() {
		pool.Submit(func(ctx context.Context) error { return nil })
		pool.Close()
		close(done)
	}()

	count := 0
	for range out {
		count++
	}
	<-done
	if count != 1 {
		t.Fatalf("expected the single task to run, got %d results", count)
	}
}
