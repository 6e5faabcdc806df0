//go:build !tinygo

package device

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watchable scanners name the directories whose changes mean a drive came or went.
type Watchable interface {
	WatchPaths() []string
}

// Monitor rescans drives when the watched directories change, and on a
// slow poll for changes inotify cannot see (mounts). onChange receives
// the full list, first once at start and then only when it differs.
type Monitor struct {
	scanner  Scanner
	onChange func([]Drive)
	debounce time.Duration
	poll     time.Duration
	log      *log.Logger

	mu      sync.Mutex
	current []Drive
	primed  bool
}

type MonitorOption func(*Monitor)

// WithDebounce sets how long a burst of events must settle before a rescan.
func WithDebounce(d time.Duration) MonitorOption {
	return func(m *Monitor) { m.debounce = d }
}

// WithPoll sets the fallback rescan interval.
func WithPoll(d time.Duration) MonitorOption {
	return func(m *Monitor) { m.poll = d }
}

func WithLogger(l *log.Logger) MonitorOption {
	return func(m *Monitor) { m.log = l }
}

func NewMonitor(s Scanner, onChange func([]Drive), opts ...MonitorOption) *Monitor {
	m := &Monitor{
		scanner:  s,
		onChange: onChange,
		debounce: 250 * time.Millisecond,
		poll:     2 * time.Second,
	}
	for _, o := range opts {
		o(m)
	}
	if m.log == nil {
		m.log = log.New(io.Discard)
	}
	return m
}

// Current returns the last scan result.
func (m *Monitor) Current() []Drive {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Drive(nil), m.current...)
}

// Run watches until ctx is done.
func (m *Monitor) Run(ctx context.Context) error {
	m.rescan(ctx)

	var (
		events <-chan fsnotify.Event
		errs   <-chan error
	)
	if w, ok := m.scanner.(Watchable); ok {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			m.log.Warn("watcher unavailable, polling only", "err", err)
		} else {
			defer watcher.Close()
			for _, p := range w.WatchPaths() {
				if err := watcher.Add(p); err != nil {
					m.log.Debug("watch failed, polling", "path", p, "err", err)
				}
			}
			events, errs = watcher.Events, watcher.Errors
		}
	}

	poll := time.NewTicker(m.poll)
	defer poll.Stop()

	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				settle = time.After(m.debounce)
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			m.log.Warn("watcher error", "err", err)
			settle = time.After(m.debounce)
		case <-settle:
			settle = nil
			m.rescan(ctx)
		case <-poll.C:
			m.rescan(ctx)
		}
	}
}

func (m *Monitor) rescan(ctx context.Context) {
	drives, err := m.scanner.Scan(ctx)
	if err != nil {
		if ctx.Err() == nil {
			m.log.Warn("scan failed", "err", err)
		}
		return
	}

	m.mu.Lock()
	changed := !m.primed || !Equal(m.current, drives)
	m.current = drives
	m.primed = true
	m.mu.Unlock()

	if changed {
		m.log.Debug("drives changed", "count", len(drives))
		if m.onChange != nil {
			m.onChange(append([]Drive(nil), drives...))
		}
	}
}
