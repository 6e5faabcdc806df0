// Package files is the screen that lists every file on one drive.
//
// The listing runs on the worker pool. Until it finishes the screen shows
// a "reading" line and only Back works; afterwards the buttons page and
// pan through the result.
package files

import (
	"context"
	"io"
	"sync/atomic"

	"bonnet/device"
	"bonnet/listing"
	"bonnet/ui/i18n"
	"bonnet/ui/input"
	"bonnet/ui/nav"
	"bonnet/ui/render"
	"bonnet/ui/task"
	"bonnet/ui/view"

	"github.com/charmbracelet/log"
)

// Config carries the collaborators every files screen shares.
type Config struct {
	Face     render.Face
	Rows     int
	Text     i18n.Formatter
	Provider listing.Provider
	Pool     *task.Pool
	Log      *log.Logger
}

type Screen struct {
	nav      nav.Navigator
	face     render.Face
	rows     int
	text     i18n.Formatter
	provider listing.Provider
	log      *log.Logger

	// drive is touched on the UI thread only.
	drive device.Drive

	view  *view.Publisher
	task  *task.Binding[[]listing.Entry]
	pager *input.Pager

	// submits counts listings started; settled is the last one whose
	// result or error has been published. The binding marks a handle
	// finished only after its callback returns.
	submits atomic.Uint64
	settled atomic.Uint64
}

var (
	_ nav.ButtonHandler     = (*Screen)(nil)
	_ nav.DeviceChangeAware = (*Screen)(nil)
	_ nav.Destroyer         = (*Screen)(nil)
)

// New returns a screen for d. The listing starts with the first drive
// list the screen receives.
func New(n nav.Navigator, d device.Drive, cfg Config) *Screen {
	logger := cfg.Log
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rows := cfg.Rows
	if rows <= 0 {
		rows = 1
	}
	s := &Screen{
		nav:      n,
		face:     cfg.Face,
		rows:     rows,
		text:     cfg.Text,
		provider: cfg.Provider,
		log:      logger.WithPrefix("files"),
		drive:    d,
		view:     view.NewPublisher(view.Loading(cfg.Text.Format(i18n.MsgReading, d.Name()))),
	}
	s.task = task.NewBinding[[]listing.Entry](cfg.Pool, s.log)
	s.pager = &input.Pager{
		PageSize: rows,
		PanStep:  cfg.Face.PanStep(),
		View:     s.view,
		Ready:    s.Ready,
		Back:     n.PopToParent,
		Repaint:  n.RequestRepaint,
	}
	return s
}

// Ready reports whether the listing is settled: nothing submitted, or
// the latest submission's result or error is on screen.
func (s *Screen) Ready() bool {
	return s.settled.Load() == s.submits.Load()
}

// View returns the state the next render will draw.
func (s *Screen) View() view.State { return s.view.Current() }

// Task returns the active listing handle, or nil.
func (s *Screen) Task() *task.Handle { return s.task.Active() }

func (s *Screen) Render(c *render.Canvas) {
	st := s.view.Current()
	for i := 0; i < s.rows; i++ {
		idx := st.LineOffset + i
		header := idx == 0
		x := st.XOffset
		if header {
			x++
		}
		s.face.DrawRow(c, i, x, st.Line(idx), header)
	}
}

func (s *Screen) HandleButton(b input.Button) {
	s.pager.Handle(b)
}

// DrivesChanged pops the screen when its drive is gone, and otherwise
// lists the drive again as it is now (it may have just been mounted).
func (s *Screen) DrivesChanged(drives []device.Drive) {
	d, ok := device.Find(drives, s.drive.ID)
	if !ok {
		s.log.Info("drive removed", "drive", s.drive.Name())
		s.nav.PopToParent()
		return
	}
	s.drive = d
	s.submit(d)
}

func (s *Screen) submit(d device.Drive) {
	label := d.Name()
	gen := s.submits.Add(1)
	s.task.Submit(
		func(ctx context.Context) ([]listing.Entry, error) {
			return s.provider.List(ctx, d)
		},
		func(entries []listing.Entry) {
			lines := make([]string, 0, len(entries)+1)
			lines = append(lines, s.text.Format(i18n.MsgNumFiles, label, len(entries)))
			lines = append(lines, listing.Lines(entries)...)
			s.view.Publish(view.State{Lines: lines})
			s.settled.Store(gen)
			s.nav.RequestRepaint()
		},
		func(err error) {
			s.view.Publish(view.Error(s.text.Format(i18n.MsgCantReadPort, label)))
			s.settled.Store(gen)
			s.nav.RequestRepaint()
		},
	)
}

// Destroy cancels the listing; its result will never be shown.
func (s *Screen) Destroy() {
	s.task.Cancel()
}
