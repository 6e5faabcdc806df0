package listing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"bonnet/device"

	"github.com/charmbracelet/log"
)

// WalkProvider lists a mounted drive by walking its directory tree in
// lexical order. Unmounted drives are mounted first.
type WalkProvider struct {
	mounter device.Mounter
	log     *log.Logger
}

func NewWalkProvider(m device.Mounter, logger *log.Logger) *WalkProvider {
	if m == nil {
		m = device.NopMounter{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &WalkProvider{mounter: m, log: logger}
}

func (p *WalkProvider) List(ctx context.Context, d device.Drive) ([]Entry, error) {
	if !d.Mounted() {
		mounted, err := p.mounter.Mount(ctx, d)
		if err != nil {
			return nil, err
		}
		p.log.Info("mounted", "drive", d.Name(), "at", mounted.MountPoint)
		d = mounted
	}

	root := d.MountPoint
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("listing: %s: %w", d.Name(), err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDir, root)
	}

	var entries []Entry
	err = filepath.WalkDir(root, func(path string, de fs.DirEntry, err error) error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err != nil {
			if path == root {
				return err
			}
			// One unreadable directory should not hide the rest of the drive.
			p.log.Debug("skip unreadable", "path", path, "err", err)
			if de != nil && de.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !de.Type().IsRegular() {
			return nil
		}
		fi, err := de.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		entries = append(entries, Entry{Path: filepath.ToSlash(rel), Size: fi.Size()})
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("listing: walk %s: %w", d.Name(), err)
	}
	return entries, nil
}
