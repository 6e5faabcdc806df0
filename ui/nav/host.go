package nav

import (
	"io"
	"sync"
	"sync/atomic"

	"bonnet/device"
	"bonnet/hal"
	"bonnet/ui/input"
	"bonnet/ui/render"

	"github.com/charmbracelet/log"
)

// Host owns the screen stack. Step is the UI thread: everything that
// touches the stack happens there or in a closure posted to it.
type Host struct {
	canvas *render.Canvas
	keys   <-chan hal.KeyEvent
	log    *log.Logger

	stack []Screen

	repaint atomic.Bool

	mu   sync.Mutex
	mail []func()

	drives     []device.Drive
	haveDrives bool
}

var _ Navigator = (*Host)(nil)

// NewHost draws on canvas and reads buttons from kbd, which may be nil.
func NewHost(canvas *render.Canvas, kbd hal.Keyboard, logger *log.Logger) *Host {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := &Host{canvas: canvas, log: logger}
	if kbd != nil {
		h.keys = kbd.Events()
	}
	return h
}

// Post runs fn on the UI thread during the next Step. Safe from any goroutine.
func (h *Host) Post(fn func()) {
	h.mu.Lock()
	h.mail = append(h.mail, fn)
	h.mu.Unlock()
}

// DrivesChanged hands a new drive list to the UI thread. Safe from any goroutine.
func (h *Host) DrivesChanged(drives []device.Drive) {
	list := append([]device.Drive(nil), drives...)
	h.Post(func() {
		h.drives = list
		h.haveDrives = true
		h.notifyTop()
	})
}

func (h *Host) RequestRepaint() { h.repaint.Store(true) }

// Push shows s on top of the stack.
func (h *Host) Push(s Screen) {
	h.stack = append(h.stack, s)
	h.log.Debug("push", "depth", len(h.stack))
	h.notifyTop()
	h.RequestRepaint()
}

// PopToParent destroys the top screen and reveals its parent. The root
// screen is never popped.
func (h *Host) PopToParent() {
	if len(h.stack) <= 1 {
		return
	}
	top := h.stack[len(h.stack)-1]
	h.stack[len(h.stack)-1] = nil
	h.stack = h.stack[:len(h.stack)-1]
	if d, ok := top.(Destroyer); ok {
		d.Destroy()
	}
	h.log.Debug("pop", "depth", len(h.stack))
	h.notifyTop()
	h.RequestRepaint()
}

// Top returns the visible screen, or nil before the first Push.
func (h *Host) Top() Screen {
	if len(h.stack) == 0 {
		return nil
	}
	return h.stack[len(h.stack)-1]
}

func (h *Host) Depth() int { return len(h.stack) }

func (h *Host) notifyTop() {
	if !h.haveDrives {
		return
	}
	if a, ok := h.Top().(DeviceChangeAware); ok {
		a.DrivesChanged(h.drives)
	}
}

// Step runs one UI tick: posted closures, then queued buttons, then a
// render if anything asked for one. It never blocks.
func (h *Host) Step() error {
	h.mu.Lock()
	mail := h.mail
	h.mail = nil
	h.mu.Unlock()
	for _, fn := range mail {
		fn()
	}

keys:
	for h.keys != nil {
		select {
		case ev, ok := <-h.keys:
			if !ok {
				h.keys = nil
				break keys
			}
			h.dispatch(input.FromKey(ev))
		default:
			break keys
		}
	}

	if h.repaint.Swap(false) {
		return h.render()
	}
	return nil
}

func (h *Host) dispatch(b input.Button) {
	if b == input.None {
		return
	}
	if bh, ok := h.Top().(ButtonHandler); ok {
		bh.HandleButton(b)
	}
}

func (h *Host) render() error {
	top := h.Top()
	if top == nil || h.canvas == nil {
		return nil
	}
	h.canvas.Clear()
	top.Render(h.canvas)
	return h.canvas.Display()
}

// Close destroys every screen, top first.
func (h *Host) Close() {
	for i := len(h.stack) - 1; i >= 0; i-- {
		if d, ok := h.stack[i].(Destroyer); ok {
			d.Destroy()
		}
	}
	h.stack = nil
}
