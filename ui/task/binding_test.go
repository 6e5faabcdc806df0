package task

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func waitDone(t *testing.T, h *Handle) {
	t.Helper()
	select {
	case <-h.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("handle %d did not finish (state %s)", h.ID(), h.State())
	}
}

func TestBindingSubmitCompletes(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close()
	b := NewBinding[int](pool, nil)

	if got := b.Status(); got != Idle {
		t.Fatalf("Status() = %s; want idle", got)
	}

	var got atomic.Int64
	h := b.Submit(func(ctx context.Context) (int, error) { return 42, nil },
		func(v int) { got.Store(int64(v)) },
		func(err error) { t.Errorf("onFail(%v) called", err) })
	waitDone(t, h)

	if h.State() != Completed {
		t.Fatalf("State() = %s; want completed", h.State())
	}
	if got.Load() != 42 {
		t.Fatalf("onDone value = %d; want 42", got.Load())
	}
	if b.Status() != Completed {
		t.Fatalf("Status() = %s; want completed", b.Status())
	}
}

func TestBindingFailureInvokesOnFail(t *testing.T) {
	pool := NewPool(1)
	defer pool.Close()
	b := NewBinding[int](pool, nil)

	boom := errors.New("unreadable")
	var failed atomic.Value
	h := b.Submit(func(ctx context.Context) (int, error) { return 0, boom },
		func(int) { t.Error("onDone called on failure") },
		func(err error) { failed.Store(err) })
	waitDone(t, h)

	if h.State() != Failed || !errors.Is(h.Err(), boom) {
		t.Fatalf("handle = %s/%v; want failed/%v", h.State(), h.Err(), boom)
	}
	if err, _ := failed.Load().(error); !errors.Is(err, boom) {
		t.Fatalf("onFail err = %v; want %v", err, boom)
	}
}

func TestBindingPanicBecomesFailure(t *testing.T) {
	pool := NewPool(1)
	defer pool.Close()
	b := NewBinding[int](pool, nil)

	h := b.Submit(func(ctx context.Context) (int, error) { panic("bad sector") }, nil, nil)
	waitDone(t, h)
	if h.State() != Failed || h.Err() == nil {
		t.Fatalf("handle = %s/%v; want failed with error", h.State(), h.Err())
	}
}

func TestBindingBackToBackOnlySecondPublishes(t *testing.T) {
	pool := NewPool(2)
	b := NewBinding[string](pool, nil)

	release := make(chan struct{})
	var mu sync.Mutex
	var published []string
	onDone := func(v string) {
		mu.Lock()
		published = append(published, v)
		mu.Unlock()
	}

	first := b.Submit(func(ctx context.Context) (string, error) {
		<-release
		return "first", nil
	}, onDone, func(error) { t.Error("first onFail called") })

	second := b.Submit(func(ctx context.Context) (string, error) {
		return "second", nil
	}, onDone, nil)

	if first.State() != Canceled {
		t.Fatalf("first.State() = %s; want canceled right after the second submit", first.State())
	}
	waitDone(t, second)
	close(release)
	pool.Close()

	mu.Lock()
	defer mu.Unlock()
	if len(published) != 1 || published[0] != "second" {
		t.Fatalf("published = %v; want [second]", published)
	}
	if !errors.Is(first.Err(), ErrCanceled) {
		t.Fatalf("first.Err() = %v; want ErrCanceled", first.Err())
	}
}

func TestBindingRapidSubmitsPublishInOrderEndingWithLast(t *testing.T) {
	const n = 200
	pool := NewPool(4)
	b := NewBinding[int](pool, nil)

	var mu sync.Mutex
	var seen []int
	for i := 0; i < n; i++ {
		i := i
		b.Submit(func(ctx context.Context) (int, error) {
			if i%3 == 0 {
				time.Sleep(time.Millisecond)
			}
			return i, nil
		}, func(v int) {
			mu.Lock()
			seen = append(seen, v)
			mu.Unlock()
		}, nil)
	}
	last := b.Active()
	waitDone(t, last)
	pool.Close()

	mu.Lock()
	defer mu.Unlock()
	if len(seen) == 0 || seen[len(seen)-1] != n-1 {
		t.Fatalf("last published = %v; want %d", seen, n-1)
	}
	for i := 1; i < len(seen); i++ {
		if seen[i] <= seen[i-1] {
			t.Fatalf("stale callback fired after a newer submit: %v", seen)
		}
	}
}

func TestBindingCancelSuppressesCallbacks(t *testing.T) {
	pool := NewPool(1)
	b := NewBinding[int](pool, nil)

	started := make(chan struct{})
	h := b.Submit(func(ctx context.Context) (int, error) {
		close(started)
		<-ctx.Done()
		return 0, ctx.Err()
	}, func(int) { t.Error("onDone after cancel") }, func(error) { t.Error("onFail after cancel") })

	<-started
	b.Cancel()
	b.Cancel()
	waitDone(t, h)
	pool.Close()

	if h.State() != Canceled {
		t.Fatalf("State() = %s; want canceled", h.State())
	}
	if b.Status() != Canceled {
		t.Fatalf("Status() = %s; want canceled", b.Status())
	}
}

func TestBindingCancelWithoutSubmitIsNoop(t *testing.T) {
	pool := NewPool(1)
	defer pool.Close()
	b := NewBinding[int](pool, nil)
	b.Cancel()
	if b.Status() != Idle {
		t.Fatalf("Status() = %s; want idle", b.Status())
	}
}

func TestBindingSubmitAfterPoolClose(t *testing.T) {
	pool := NewPool(1)
	pool.Close()
	b := NewBinding[int](pool, nil)

	h := b.Submit(func(ctx context.Context) (int, error) { return 1, nil },
		func(int) { t.Error("onDone on closed pool") }, nil)
	waitDone(t, h)
	if !errors.Is(h.Err(), ErrPoolClosed) {
		t.Fatalf("Err() = %v; want ErrPoolClosed", h.Err())
	}
}

func TestPoolBoundsConcurrency(t *testing.T) {
	const workers = 2
	pool := NewPool(workers)

	var cur, peak atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		pool.Go(pool.Context(), func(ctx context.Context) {
			defer wg.Done()
			n := cur.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			cur.Add(-1)
		})
	}
	wg.Wait()
	pool.Close()

	if peak.Load() > workers {
		t.Fatalf("peak concurrency = %d; want <= %d", peak.Load(), workers)
	}
}
