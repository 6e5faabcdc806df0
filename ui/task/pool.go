package task

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// DefaultWorkers is the worker count used when NewPool gets n <= 0.
const DefaultWorkers = 2

// Pool runs background work on a bounded number of goroutines.
//
// Go never blocks the caller: work waits for a free slot on its own goroutine.
type Pool struct {
	sem    *semaphore.Weighted
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewPool returns a pool running at most n pieces of work at once.
func NewPool(n int) *Pool {
	if n <= 0 {
		n = DefaultWorkers
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		sem:    semaphore.NewWeighted(int64(n)),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Context is canceled when the pool is closed. Work contexts derive from it.
func (p *Pool) Context() context.Context { return p.ctx }

// Go schedules fn. It returns false if the pool is closed.
//
// fn runs exactly once. If ctx ends while waiting for a slot, fn still runs
// (without a slot) so it can observe ctx.Err() and unwind.
func (p *Pool) Go(ctx context.Context, fn func(ctx context.Context)) bool {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return false
	}
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		if err := p.sem.Acquire(ctx, 1); err != nil {
			fn(ctx)
			return
		}
		defer p.sem.Release(1)
		fn(ctx)
	}()
	return true
}

// Close cancels all outstanding work and waits for the workers to return.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()
}
