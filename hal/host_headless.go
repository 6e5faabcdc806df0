//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"io"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Hz    int
	Ticks uint64
	// Keys are pressed one at a time, KeyEvery ticks apart.
	Keys     []KeyCode
	KeyEvery int
	// Dump receives the last presented frame when the run ends.
	Dump io.Writer
}

// RunHeadless runs the viewer without opening a window.
func RunHeadless(ctx context.Context, cfg HostConfig, newApp func(HAL) func() error, hc HeadlessConfig) error {
	if hc.Hz <= 0 {
		hc.Hz = 60
	}
	if hc.KeyEvery <= 0 {
		hc.KeyEvery = hc.Hz / 2
		if hc.KeyEvery <= 0 {
			hc.KeyEvery = 1
		}
	}

	h := newHost(cfg)
	step := newApp(h)
	defer dumpFrame(h.fb, hc.Dump)

	d := time.Second / time.Duration(hc.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", hc.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	keys := hc.Keys
	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if len(keys) > 0 && tick > 0 && tick%uint64(hc.KeyEvery) == 0 {
				h.kbd.push(keys[0])
				keys = keys[1:]
			}
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if hc.Ticks > 0 && tick >= hc.Ticks {
				return nil
			}
		}
	}
}

func dumpFrame(fb *MemFramebuffer, w io.Writer) {
	if w == nil {
		return
	}
	frame := make([]byte, len(fb.buf))
	fb.Snapshot(frame)
	fmt.Fprintln(w, Blocks(frame, fb.width, fb.height))
}
