// Package drives is the drive chooser. Confirm opens a files screen for
// the selected drive.
package drives

import (
	"io"

	"bonnet/device"
	"bonnet/screens/files"
	"bonnet/ui/i18n"
	"bonnet/ui/input"
	"bonnet/ui/menu"
	"bonnet/ui/nav"
	"bonnet/ui/render"

	"github.com/charmbracelet/log"
)

type Screen struct {
	nav   nav.Navigator
	face  render.Face
	text  i18n.Formatter
	files files.Config
	log   *log.Logger

	drives []device.Drive
	list   menu.List
}

var (
	_ nav.ButtonHandler     = (*Screen)(nil)
	_ nav.DeviceChangeAware = (*Screen)(nil)
)

// New returns a chooser whose files screens are built from cfg.
func New(n nav.Navigator, cfg files.Config) *Screen {
	logger := cfg.Log
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Screen{
		nav:   n,
		face:  cfg.Face,
		text:  cfg.Text,
		files: cfg,
		log:   logger.WithPrefix("drives"),
	}
}

func (s *Screen) Render(c *render.Canvas) {
	s.list.Draw(c, s.face, s.text.Format(i18n.MsgChooseDrive), s.text.Format(i18n.MsgNoDrives))
}

func (s *Screen) DrivesChanged(drives []device.Drive) {
	var prevID string
	if i := s.list.Index(); i >= 0 && i < len(s.drives) {
		prevID = s.drives[i].ID
	}

	s.drives = append(s.drives[:0:0], drives...)
	labels := make([]string, len(s.drives))
	for i, d := range s.drives {
		labels[i] = s.label(d)
	}
	s.list.SetItems(labels)
	for i, d := range s.drives {
		if d.ID == prevID {
			s.list.Select(i)
			break
		}
	}
	s.nav.RequestRepaint()
}

func (s *Screen) label(d device.Drive) string {
	if d.Mounted() {
		return d.String()
	}
	return d.String() + " (" + s.text.Format(i18n.MsgNotMounted) + ")"
}

// Selected returns the highlighted drive.
func (s *Screen) Selected() (device.Drive, bool) {
	i := s.list.Index()
	if i < 0 || i >= len(s.drives) {
		return device.Drive{}, false
	}
	return s.drives[i], true
}

func (s *Screen) HandleButton(b input.Button) {
	switch b {
	case input.Up:
		s.list.Up()
	case input.Down:
		s.list.Down()
	case input.Confirm:
		d, ok := s.Selected()
		if !ok {
			return
		}
		s.log.Info("open", "drive", d.Name(), "id", d.ID)
		s.nav.Push(files.New(s.nav, d, s.files))
		return
	case input.Back:
		s.nav.PopToParent()
		return
	default:
		return
	}
	s.nav.RequestRepaint()
}
