// Package listing enumerates the files on a drive.
package listing

import (
	"context"
	"errors"

	"bonnet/device"

	"github.com/dustin/go-humanize"
)

// ErrNotDir is returned when a drive's mount point is not a directory.
var ErrNotDir = errors.New("listing: mount point is not a directory")

// Entry is one regular file, with Path relative to the drive root.
type Entry struct {
	Path string
	Size int64
}

func (e Entry) String() string {
	return e.Path + " " + humanize.Bytes(uint64(e.Size))
}

// Provider lists every file on a drive in a stable order. Implementations
// must return promptly with ctx.Err() once ctx is canceled.
type Provider interface {
	List(ctx context.Context, d device.Drive) ([]Entry, error)
}

// Lines renders entries one per line.
func Lines(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.String()
	}
	return out
}
