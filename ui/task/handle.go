package task

import (
	"context"
	"sync"
	"sync/atomic"
)

// Handle is one submitted unit of work. It is owned by the Binding that created it.
type Handle struct {
	id     uint64
	state  atomic.Uint32
	cancel context.CancelFunc

	once sync.Once
	done chan struct{}

	mu  sync.Mutex
	err error
}

func newHandle(id uint64, cancel context.CancelFunc) *Handle {
	h := &Handle{id: id, cancel: cancel, done: make(chan struct{})}
	h.state.Store(uint32(Running))
	return h
}

// ID returns the binding generation the handle was submitted under.
func (h *Handle) ID() uint64 { return h.id }

// State returns the current state.
func (h *Handle) State() State { return State(h.state.Load()) }

// Done is closed once the handle reaches a terminal state.
//
// A canceled handle is terminal as soon as the cancel is requested; its
// work may still be unwinding on a worker.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Err returns the failure or cancellation cause, nil while running or on success.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// finish moves the handle to a terminal state. The first call wins.
func (h *Handle) finish(st State, err error) bool {
	won := false
	h.once.Do(func() {
		h.mu.Lock()
		h.err = err
		h.mu.Unlock()
		h.state.Store(uint32(st))
		if h.cancel != nil {
			h.cancel()
		}
		close(h.done)
		won = true
	})
	return won
}

func (h *Handle) requestCancel() bool {
	return h.finish(Canceled, ErrCanceled)
}
