//go:build !tinygo

package device

import (
	"context"
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
)

func TestUdisksMounterMountsThroughBus(t *testing.T) {
	var gotObj dbus.ObjectPath
	var gotOpts map[string]dbus.Variant
	m := &UdisksMounter{call: func(_ context.Context, obj dbus.ObjectPath, opts map[string]dbus.Variant) (string, error) {
		gotObj, gotOpts = obj, opts
		return "/media/pi/STICK", nil
	}}
	d, err := m.Mount(context.Background(), Drive{ID: "/dev/sda1", Port: "USB1"})
	if err != nil {
		t.Fatal(err)
	}
	if d.MountPoint != "/media/pi/STICK" || d.Port != "USB1" {
		t.Errorf("Mount() = %+v", d)
	}
	if gotObj != "/org/freedesktop/UDisks2/block_devices/sda1" {
		t.Errorf("object = %q", gotObj)
	}
	if v, ok := gotOpts["auth.no_user_interaction"]; !ok || v.Value() != true {
		t.Errorf("options = %v, want auth.no_user_interaction=true", gotOpts)
	}
}

func TestUdisksMounterReportsFailure(t *testing.T) {
	busErr := dbus.Error{Name: "org.freedesktop.UDisks2.Error.NotAuthorized"}
	m := &UdisksMounter{call: func(context.Context, dbus.ObjectPath, map[string]dbus.Variant) (string, error) {
		return "", busErr
	}}
	d, err := m.Mount(context.Background(), Drive{ID: "/dev/sda1"})
	if !errors.Is(err, ErrNotMounted) {
		t.Fatalf("Mount() error = %v, want ErrNotMounted", err)
	}
	if d.Mounted() {
		t.Errorf("failed Mount() returned mounted drive %+v", d)
	}

	m.call = func(context.Context, dbus.ObjectPath, map[string]dbus.Variant) (string, error) {
		return "", nil
	}
	if _, err := m.Mount(context.Background(), Drive{ID: "/dev/sda1"}); !errors.Is(err, ErrNotMounted) {
		t.Fatalf("empty mount point: error = %v, want ErrNotMounted", err)
	}
}

func TestUdisksMounterSkipsMounted(t *testing.T) {
	m := &UdisksMounter{call: func(context.Context, dbus.ObjectPath, map[string]dbus.Variant) (string, error) {
		t.Fatal("bus called for a mounted drive")
		return "", nil
	}}
	d, err := m.Mount(context.Background(), Drive{ID: "/dev/sda1", MountPoint: "/m"})
	if err != nil || d.MountPoint != "/m" {
		t.Fatalf("Mount() = %+v, %v", d, err)
	}
}

func TestBlockObjectPath(t *testing.T) {
	for dev, want := range map[string]dbus.ObjectPath{
		"/dev/sda1":      "/org/freedesktop/UDisks2/block_devices/sda1",
		"/dev/mmcblk0p1": "/org/freedesktop/UDisks2/block_devices/mmcblk0p1",
		"/dev/dm-0":      "/org/freedesktop/UDisks2/block_devices/dm_2d0",
		"/dev/my_disk":   "/org/freedesktop/UDisks2/block_devices/my_5fdisk",
	} {
		if got := blockObjectPath(dev); got != want {
			t.Errorf("blockObjectPath(%q) = %q, want %q", dev, got, want)
		}
	}
}
