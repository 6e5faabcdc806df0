package task

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Work is a cancellable unit of background work.
//
// Implementations must check ctx between natural steps (e.g. directory
// entries) and return ctx.Err() promptly once it is done.
type Work[T any] func(ctx context.Context) (T, error)

// Binding owns at most one active Handle.
//
// Submitting new work cancels the previous handle without waiting for it.
// Callbacks of a canceled or superseded handle never run.
type Binding[T any] struct {
	pool *Pool
	log  *log.Logger

	mu     sync.Mutex
	gen    uint64
	active *Handle
}

// NewBinding returns a Binding that runs work on pool.
func NewBinding[T any](pool *Pool, logger *log.Logger) *Binding[T] {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Binding[T]{pool: pool, log: logger}
}

// Submit cancels the active handle, if any, and starts work.
//
// onDone receives the result, onFail the error; either may be nil. They run
// on a worker goroutine with the binding locked, so they must be quick and
// must not call back into the Binding.
func (b *Binding[T]) Submit(work Work[T], onDone func(T), onFail func(error)) *Handle {
	b.mu.Lock()
	if b.active != nil && b.active.requestCancel() {
		b.log.Debug("task superseded", "id", b.active.ID())
	}
	b.gen++
	gen := b.gen
	ctx, cancel := context.WithCancel(b.pool.Context())
	h := newHandle(gen, cancel)
	b.active = h
	b.mu.Unlock()

	ok := b.pool.Go(ctx, func(ctx context.Context) {
		b.run(ctx, h, work, onDone, onFail)
	})
	if !ok {
		h.finish(Canceled, ErrPoolClosed)
		b.log.Warn("task dropped", "id", gen, "err", ErrPoolClosed)
	}
	return h
}

// Cancel cancels the active handle. It is idempotent.
func (b *Binding[T]) Cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gen++
	if b.active != nil && b.active.requestCancel() {
		b.log.Debug("task canceled", "id", b.active.ID())
	}
}

// Status returns the active handle's state, or Idle when nothing was submitted.
func (b *Binding[T]) Status() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active == nil {
		return Idle
	}
	return b.active.State()
}

// Active returns the current handle, or nil.
func (b *Binding[T]) Active() *Handle {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

func (b *Binding[T]) run(ctx context.Context, h *Handle, work Work[T], onDone func(T), onFail func(error)) {
	var (
		res T
		err error
	)
	if err = ctx.Err(); err == nil {
		res, err = call(ctx, work)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if h.ID() != b.gen || ctx.Err() != nil {
		h.finish(Canceled, ErrCanceled)
		b.log.Debug("task result discarded", "id", h.ID())
		return
	}
	if err != nil {
		if onFail != nil {
			onFail(err)
		}
		h.finish(Failed, err)
		b.log.Warn("task failed", "id", h.ID(), "err", err)
		return
	}
	if onDone != nil {
		onDone(res)
	}
	h.finish(Completed, nil)
}

func call[T any](ctx context.Context, work Work[T]) (res T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panic: %v", r)
		}
	}()
	return work(ctx)
}
