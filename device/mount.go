//go:build !tinygo

package device

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/godbus/dbus/v5"
)

const (
	udisksService    = "org.freedesktop.UDisks2"
	udisksBlockPath  = "/org/freedesktop/UDisks2/block_devices/"
	udisksFilesystem = "org.freedesktop.UDisks2.Filesystem"
)

type mountCall func(ctx context.Context, obj dbus.ObjectPath, opts map[string]dbus.Variant) (string, error)

// UdisksMounter mounts partitions through the UDisks2 service on the
// system bus, which needs no root for removable media.
type UdisksMounter struct {
	// call runs Filesystem.Mount on a block object; nil means the system bus.
	call mountCall
}

func (m *UdisksMounter) Mount(ctx context.Context, d Drive) (Drive, error) {
	if d.Mounted() {
		return d, nil
	}
	call := m.call
	if call == nil {
		call = systemBusMount
	}

	opts := map[string]dbus.Variant{
		"auth.no_user_interaction": dbus.MakeVariant(true),
	}
	mp, err := call(ctx, blockObjectPath(d.ID), opts)
	if err != nil {
		return d, fmt.Errorf("%w: %s: %v", ErrNotMounted, d.ID, err)
	}
	if mp == "" {
		return d, fmt.Errorf("%w: %s: udisks returned no mount point", ErrNotMounted, d.ID)
	}
	d.MountPoint = mp
	return d, nil
}

func systemBusMount(ctx context.Context, obj dbus.ObjectPath, opts map[string]dbus.Variant) (string, error) {
	conn, err := dbus.ConnectSystemBus(dbus.WithContext(ctx))
	if err != nil {
		return "", err
	}
	defer conn.Close()

	var mp string
	err = conn.Object(udisksService, obj).
		CallWithContext(ctx, udisksFilesystem+".Mount", 0, opts).
		Store(&mp)
	return mp, err
}

// blockObjectPath names the UDisks2 object of a device node. udisks keeps
// ASCII letters and digits and writes every other byte as _xx.
func blockObjectPath(dev string) dbus.ObjectPath {
	name := filepath.Base(dev)
	var b strings.Builder
	b.WriteString(udisksBlockPath)
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "_%02x", c)
		}
	}
	return dbus.ObjectPath(b.String())
}
