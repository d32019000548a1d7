package client

import (
	"context"
	"sync"
	"time"
)

// RequestQueue serializes outbound calls: operations run strictly in
// submission order, one at a time, with a minimum interval between the
// starts of consecutive operations. One operation's failure never blocks
// the ones queued behind it; each caller gets its own result.
//
// The queue itself never retries; that is the wrapped operation's concern
// (see WithRetry).
type RequestQueue struct {
	minInterval time.Duration
	jobs        chan func()
	closeOnce   sync.Once
}

// NewRequestQueue starts the queue's single worker. minInterval defaults
// to 100ms when non-positive.
func NewRequestQueue(minInterval time.Duration) *RequestQueue {
	if minInterval <= 0 {
		minInterval = 100 * time.Millisecond
	}

	q := &RequestQueue{
		minInterval: minInterval,
		jobs:        make(chan func(), 64),
	}
	go q.run()

	return q
}

func (q *RequestQueue) run() {
	var lastStart time.Time
	for job := range q.jobs {
		if !lastStart.IsZero() {
			if wait := q.minInterval - time.Since(lastStart); wait > 0 {
				time.Sleep(wait)
			}
		}
		lastStart = time.Now()
		job()
	}
}

// Close stops the worker once queued operations drain. Enqueue after Close
// panics.
func (q *RequestQueue) Close() {
	q.closeOnce.Do(func() { close(q.jobs) })
}

type outcome[T any] struct {
	v   T
	err error
}

// Enqueue submits op and waits for its result. The operation still runs
// under the caller's ctx, so cancelling it aborts the operation itself but
// does not disturb anything queued behind it.
func Enqueue[T any](ctx context.Context, q *RequestQueue, op func(ctx context.Context) (T, error)) (T, error) {
	res := make(chan outcome[T], 1)

	q.jobs <- func() {
		v, err := op(ctx)
		res <- outcome[T]{v: v, err: err}
	}

	r := <-res
	return r.v, r.err
}
