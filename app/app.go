// Package app wires the drive viewer together: HAL, fonts, language,
// workers, the screen stack and its device feed.
package app

import (
	"fmt"
	"io"
	"time"

	"bonnet/device"
	"bonnet/hal"
	"bonnet/internal/buildinfo"
	"bonnet/internal/config"
	"bonnet/listing"
	"bonnet/screens/drives"
	"bonnet/screens/files"
	"bonnet/screens/lang"
	"bonnet/ui/i18n"
	"bonnet/ui/nav"
	"bonnet/ui/render"
	"bonnet/ui/task"

	"github.com/charmbracelet/log"
)

// Options picks what New builds. Zero fields come from Config.
type Options struct {
	Config config.Config
	// Provider lists drive contents. Defaults to a WalkProvider with the
	// configured mounter.
	Provider listing.Provider
	// LogOutput overrides the HAL logger as the log sink.
	LogOutput io.Writer
}

type App struct {
	cfg    config.Config
	log    *log.Logger
	loc    *i18n.Localizer
	canvas *render.Canvas
	pool   *task.Pool
	host   *nav.Host

	failed error
}

// New builds the viewer on h, paints the splash and pushes the language
// chooser. Nothing is listed until DrivesChanged delivers a drive list.
func New(h hal.HAL, opts Options) (*App, error) {
	cfg := opts.Config
	fb := h.Display().Framebuffer()
	if fb == nil {
		return nil, fmt.Errorf("app: no framebuffer")
	}

	out := opts.LogOutput
	if out == nil {
		out = hal.LineWriter(h.Logger())
	}
	logger, err := newLogger(out, cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	face, err := render.LoadFace(cfg.Display.Font)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	a := &App{
		cfg:    cfg,
		log:    logger,
		loc:    i18n.New(i18n.Parse(cfg.UI.Language)),
		canvas: render.NewCanvas(fb),
		pool:   task.NewPool(cfg.Workers.Max),
	}
	splash(a.canvas, face, a.loc.Format(i18n.MsgPleaseWait), buildinfo.Short())

	provider := opts.Provider
	if provider == nil {
		provider = listing.NewWalkProvider(newMounter(cfg.Devices), logger)
	}

	var kbd hal.Keyboard
	if in := h.Input(); in != nil {
		kbd = in.Keyboard()
	}
	a.host = nav.NewHost(a.canvas, kbd, logger)

	filesCfg := files.Config{
		Face:     face,
		Rows:     face.Rows(a.canvas.Height()),
		Text:     a.loc,
		Provider: provider,
		Pool:     a.pool,
		Log:      logger,
	}
	a.host.Push(lang.New(a.host, face, a.loc, func() nav.Screen {
		return drives.New(a.host, filesCfg)
	}))

	logger.Info("started",
		"version", buildinfo.Short(),
		"panel", fmt.Sprintf("%dx%d", fb.Width(), fb.Height()),
		"font", cfg.Display.Font,
		"language", a.loc.Language(),
		"workers", cfg.Workers.Max,
	)
	return a, nil
}

func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("app: log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "bonnet",
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Formatter:       log.TextFormatter,
	}), nil
}

// DrivesChanged forwards a drive list to the screens. Safe from any goroutine.
func (a *App) DrivesChanged(list []device.Drive) {
	a.host.DrivesChanged(list)
}

// Step runs one UI tick. After a panic in a screen it keeps returning
// the panic as an error and leaves the panic report on the panel.
func (a *App) Step() (err error) {
	if a.failed != nil {
		return a.failed
	}
	defer func() {
		if r := recover(); r != nil {
			a.failed = a.reportPanic(r)
			err = a.failed
		}
	}()
	return a.host.Step()
}

func (a *App) Host() *nav.Host { return a.host }

func (a *App) Logger() *log.Logger { return a.log }

func (a *App) Localizer() *i18n.Localizer { return a.loc }

// Close destroys the screens, cancelling their listings, then stops the workers.
func (a *App) Close() {
	a.host.Close()
	a.pool.Close()
	a.log.Info("stopped")
}
