//go:build !tinygo

package app

import (
	"context"
	"errors"

	"bonnet/device"
	"bonnet/hal"
	"bonnet/internal/config"

	"golang.org/x/sync/errgroup"
)

// Present runs a HAL and calls newApp once with it, then drives the
// returned step function until ctx is done or step fails. hal.RunWindow,
// hal.RunHeadless and hal.RunTTY all fit once their options are bound.
type Present func(ctx context.Context, newApp func(hal.HAL) func() error) error

// Run builds the app inside present and keeps a device monitor feeding
// it. present runs on the calling goroutine, which the window presenter
// needs. A monitor failure or a cancelled ctx stops the presenter.
func Run(ctx context.Context, opts Options, scanner device.Scanner, present Present) error {
	if scanner == nil {
		scanner = NewScanner(opts.Config.Devices)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	var a *App
	err := present(gctx, func(h hal.HAL) func() error {
		built, err := New(h, opts)
		if err != nil {
			return func() error { return err }
		}
		a = built

		mon := device.NewMonitor(scanner, a.DrivesChanged,
			device.WithDebounce(opts.Config.Devices.Debounce()),
			device.WithPoll(opts.Config.Devices.Poll()),
			device.WithLogger(a.Logger().WithPrefix("devices")),
		)
		g.Go(func() error { return mon.Run(gctx) })

		return func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return a.Step()
		}
	})

	// The presenter is gone; release the monitor before waiting on it.
	cancel()
	werr := g.Wait()

	if a != nil {
		a.Close()
	}
	if werr != nil {
		return werr
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// NewScanner builds the drive scanner the config asks for.
func NewScanner(cfg config.DevicesConfig) device.Scanner {
	if cfg.Mode == config.DeviceModeDir {
		return &device.DirScanner{Root: cfg.Root}
	}
	return &device.SysScanner{
		ByIDDir:    cfg.ByIDDir,
		ByPathDir:  cfg.ByPathDir,
		ByLabelDir: cfg.ByLabelDir,
		MountInfo:  cfg.MountInfo,
		SysBlock:   cfg.SysBlock,
	}
}
