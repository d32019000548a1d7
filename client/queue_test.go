package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestRequestQueue_SpacesOperationStarts(t *testing.T) {
	const interval = 50 * time.Millisecond

	q := NewRequestQueue(interval)
	defer q.Close()

	var mu sync.Mutex
	var starts []time.Time

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = Enqueue(context.Background(), q, func(ctx context.Context) (int, error) {
				mu.Lock()
				starts = append(starts, time.Now())
				mu.Unlock()
				return 0, nil
			})
		}()
	}
	wg.Wait()

	if len(starts) != 3 {
		t.Fatalf("got %d operations, want 3", len(starts))
	}
	for i := 1; i < len(starts); i++ {
		if gap := starts[i].Sub(starts[i-1]); gap < interval {
			t.Errorf("gap between operations %d and %d = %v, want >= %v", i-1, i, gap, interval)
		}
	}
}

func TestRequestQueue_PreservesOrder(t *testing.T) {
	q := NewRequestQueue(time.Millisecond)
	defer q.Close()

	var mu sync.Mutex
	var order []int

	results := make([]chan struct{}, 5)
	for i := range results {
		results[i] = make(chan struct{})
	}

	for i := 0; i < 5; i++ {
		i := i
		go func() {
			_, _ = Enqueue(context.Background(), q, func(ctx context.Context) (int, error) {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				return i, nil
			})
			close(results[i])
		}()
		// Give each goroutine time to enqueue before the next one.
		time.Sleep(5 * time.Millisecond)
	}

	for _, done := range results {
		<-done
	}

	for i, got := range order {
		if got != i {
			t.Fatalf("order = %v, want sequential", order)
		}
	}
}

func TestRequestQueue_FailureDoesNotBlockNext(t *testing.T) {
	q := NewRequestQueue(time.Millisecond)
	defer q.Close()

	fail := errors.New("boom")
	if _, err := Enqueue(context.Background(), q, func(ctx context.Context) (int, error) {
		return 0, fail
	}); !errors.Is(err, fail) {
		t.Fatalf("first op error = %v, want %v", err, fail)
	}

	got, err := Enqueue(context.Background(), q, func(ctx context.Context) (int, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("second op error = %v", err)
	}
	if got != 42 {
		t.Errorf("second op = %d, want 42", got)
	}
}

func TestRequestQueue_DefaultInterval(t *testing.T) {
	q := NewRequestQueue(0)
	defer q.Close()

	if q.minInterval != 100*time.Millisecond {
		t.Errorf("minInterval = %v, want 100ms", q.minInterval)
	}
}
