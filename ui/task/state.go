package task

import "errors"

// State is the lifecycle state of a submitted unit of work.
type State uint32

const (
	Idle State = iota
	Running
	Completed
	Canceled
	Failed
)

var (
	// ErrCanceled is reported by handles whose work was canceled or superseded.
	ErrCanceled = errors.New("task canceled")
	// ErrPoolClosed is reported when work is submitted after the pool shut down.
	ErrPoolClosed = errors.New("task pool closed")
)

// Terminal reports whether s is Completed, Canceled or Failed.
func (s State) Terminal() bool {
	return s == Completed || s == Canceled || s == Failed
}

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Canceled:
		return "canceled"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
