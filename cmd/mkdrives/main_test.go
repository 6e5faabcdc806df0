//go:build !tinygo

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bonnet/device"
	"bonnet/listing"
)

func TestMkdrivesBuildsListableDrives(t *testing.T) {
	src := t.TempDir()
	if err := os.MkdirAll(filepath.Join(src, "docs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "docs", "readme.md"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	root := t.TempDir()

	var out bytes.Buffer
	cmd := newCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--root", root, "USB1=" + src, "SDCARD1=37"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "SDCARD1: 37 files") || !strings.Contains(out.String(), "USB1: 1 files, 2 B") {
		t.Fatalf("output = %q", out.String())
	}

	drives, err := (&device.DirScanner{Root: root}).Scan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(drives) != 2 || drives[0].Port != "SDCARD1" {
		t.Fatalf("drives = %+v", drives)
	}
	entries, err := listing.NewWalkProvider(nil, nil).List(context.Background(), drives[0])
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 37 {
		t.Fatalf("SDCARD1 has %d entries", len(entries))
	}
}

func TestMkdrivesRejectsBadDrive(t *testing.T) {
	cmd := newCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--root", t.TempDir(), "USB1"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("accepted a drive without a source")
	}
}
