//go:build !tinygo

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bonnet/hal"
)

func TestParseKeys(t *testing.T) {
	keys, err := parseKeys("enter, Down,back")
	if err != nil {
		t.Fatal(err)
	}
	want := []hal.KeyCode{hal.KeyEnter, hal.KeyDown, hal.KeyBack}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys[%d] = %v; want %v", i, keys[i], want[i])
		}
	}
	if _, err := parseKeys("enter,select"); err == nil {
		t.Fatal("parseKeys accepted an unknown key")
	}
	if keys, _ := parseKeys(" "); keys != nil {
		t.Fatalf("blank keys = %v", keys)
	}
}

func TestDrivesCommandPrintsDirDrives(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "USB1"), 0o755); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	content := "[devices]\nmode = \"dir\"\nroot = \"" + filepath.ToSlash(root) + "\"\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"drives", "--config", cfgPath})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "sim:USB1\tUSB1\t") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "bonnet dev") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestHeadlessRunDumpsFrame(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	content := "[devices]\nmode = \"dir\"\nroot = \"" + filepath.ToSlash(t.TempDir()) + "\"\n[ui]\nhz = 200\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--config", cfgPath, "--headless", "--ticks", "10", "--keys", "enter"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.ContainsAny(out.String(), "█▀▄") {
		t.Fatalf("no frame in output %q", out.String())
	}
}
