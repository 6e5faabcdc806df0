package view

import "sync/atomic"

// Publisher holds the visible State of one screen.
//
// Publish may run on a worker goroutine while the render loop calls Current.
// Every read observes a complete State: either the previous one or the new one.
type Publisher struct {
	cur atomic.Pointer[State]
	seq atomic.Uint64
}

// NewPublisher returns a Publisher seeded with initial.
func NewPublisher(initial State) *Publisher {
	p := &Publisher{}
	p.cur.Store(&initial)
	return p
}

// Publish replaces the visible State and returns the new sequence number.
func (p *Publisher) Publish(s State) uint64 {
	p.cur.Store(&s)
	return p.seq.Add(1)
}

// Current returns the latest published State.
func (p *Publisher) Current() State {
	if s := p.cur.Load(); s != nil {
		return *s
	}
	return State{}
}

// Update applies fn to the current State and publishes the result.
//
// If another Publish lands between the read and the swap, fn is re-applied
// to the newer State, so an edit never overwrites fresher content.
func (p *Publisher) Update(fn func(State) State) State {
	for {
		old := p.cur.Load()
		var base State
		if old != nil {
			base = *old
		}
		next := fn(base)
		if p.cur.CompareAndSwap(old, &next) {
			p.seq.Add(1)
			return next
		}
	}
}

// Seq returns the number of publishes so far.
func (p *Publisher) Seq() uint64 { return p.seq.Load() }
