// Package device discovers removable drives and reports when they change.
package device

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
)

// ErrNotMounted is returned when a drive has no mount point and could not be mounted.
var ErrNotMounted = errors.New("device: drive not mounted")

// Drive is one partition on a removable device.
//
// ID is the partition device (e.g. /dev/sda1). It stays the same while the
// drive is plugged in, mounted or not, and is what identity checks compare.
type Drive struct {
	ID         string
	Port       string
	Label      string
	MountPoint string
	Size       uint64
}

func (d Drive) Mounted() bool { return d.MountPoint != "" }

// Name is the text shown for the drive: its port, else its label, else its device.
func (d Drive) Name() string {
	switch {
	case d.Port != "":
		return d.Port
	case d.Label != "":
		return d.Label
	default:
		return filepath.Base(d.ID)
	}
}

func (d Drive) String() string {
	if d.Size == 0 {
		return d.Name()
	}
	return d.Name() + " " + humanize.Bytes(d.Size)
}

// Find returns the drive in list with the given ID.
func Find(list []Drive, id string) (Drive, bool) {
	for _, d := range list {
		if d.ID == id {
			return d, true
		}
	}
	return Drive{}, false
}

// Equal reports whether two scans describe the same drives in the same state.
func Equal(a, b []Drive) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Scanner lists the drives currently attached.
type Scanner interface {
	Scan(ctx context.Context) ([]Drive, error)
}

// Mounter makes an unmounted drive readable.
type Mounter interface {
	Mount(ctx context.Context, d Drive) (Drive, error)
}

// Static is a Scanner over a fixed list.
type Static []Drive

func (s Static) Scan(context.Context) ([]Drive, error) {
	return append([]Drive(nil), s...), nil
}

// NopMounter never mounts; unmounted drives fail with ErrNotMounted.
type NopMounter struct{}

func (NopMounter) Mount(_ context.Context, d Drive) (Drive, error) {
	if d.Mounted() {
		return d, nil
	}
	return d, fmt.Errorf("%w: %s", ErrNotMounted, d.ID)
}
