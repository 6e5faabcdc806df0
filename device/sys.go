package device

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// SysScanner finds USB and SD partitions through the udev symlink trees.
type SysScanner struct {
	ByIDDir    string // /dev/disk/by-id
	ByPathDir  string // /dev/disk/by-path
	ByLabelDir string // /dev/disk/by-label
	MountInfo  string // /proc/self/mountinfo
	SysBlock   string // /sys/class/block
}

// NewSysScanner returns a SysScanner over the standard Linux locations.
func NewSysScanner() *SysScanner {
	return &SysScanner{
		ByIDDir:    "/dev/disk/by-id",
		ByPathDir:  "/dev/disk/by-path",
		ByLabelDir: "/dev/disk/by-label",
		MountInfo:  "/proc/self/mountinfo",
		SysBlock:   "/sys/class/block",
	}
}

// WatchPaths are the directories whose changes signal a plug or unplug.
func (s *SysScanner) WatchPaths() []string {
	return []string{s.ByIDDir}
}

var (
	partSuffix = regexp.MustCompile(`-part\d+$`)
	usbPort    = regexp.MustCompile(`usb-\d+:([\d.]+):`)
	mmcIndex   = regexp.MustCompile(`mmcblk(\d+)p\d+$`)
)

func (s *SysScanner) Scan(ctx context.Context) ([]Drive, error) {
	ids, err := os.ReadDir(s.ByIDDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Nothing has ever been plugged in.
			return nil, nil
		}
		return nil, fmt.Errorf("device: read %s: %w", s.ByIDDir, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mounts, err := readMounts(s.MountInfo)
	if err != nil {
		return nil, err
	}
	ports := s.linkNames(s.ByPathDir)
	labels := s.linkNames(s.ByLabelDir)

	seen := make(map[string]bool)
	var drives []Drive
	for _, e := range ids {
		name := e.Name()
		if !partSuffix.MatchString(name) {
			continue
		}
		if !strings.HasPrefix(name, "usb-") && !strings.HasPrefix(name, "mmc-") {
			continue
		}
		dev, err := resolveLink(filepath.Join(s.ByIDDir, name))
		if err != nil || seen[dev] {
			continue
		}
		seen[dev] = true

		d := Drive{
			ID:         dev,
			Port:       portName(dev, ports[dev]),
			Label:      labels[dev],
			MountPoint: mounts[dev],
			Size:       s.size(dev),
		}
		drives = append(drives, d)
	}
	sort.Slice(drives, func(i, j int) bool { return drives[i].ID < drives[j].ID })
	return drives, nil
}

// linkNames maps resolved device paths to the symlink names pointing at them.
func (s *SysScanner) linkNames(dir string) map[string]string {
	out := make(map[string]string)
	if dir == "" {
		return out
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return out
	}
	for _, e := range entries {
		dev, err := resolveLink(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		if _, ok := out[dev]; !ok {
			out[dev] = unescapeUdev(e.Name())
		}
	}
	return out
}

func (s *SysScanner) size(dev string) uint64 {
	if s.SysBlock == "" {
		return 0
	}
	b, err := os.ReadFile(filepath.Join(s.SysBlock, filepath.Base(dev), "size"))
	if err != nil {
		return 0
	}
	sectors, err := strconv.ParseUint(strings.TrimSpace(string(b)), 10, 64)
	if err != nil {
		return 0
	}
	return sectors * 512
}

func resolveLink(p string) (string, error) {
	target, err := os.Readlink(p)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(p), target)
	}
	return filepath.Clean(target), nil
}

// portName labels a partition by where it is plugged in: "USB1.2" for a
// hub port, "SDCARD0" for the first MMC slot.
func portName(dev, byPath string) string {
	if m := mmcIndex.FindStringSubmatch(dev); m != nil {
		return "SDCARD" + m[1]
	}
	if m := usbPort.FindStringSubmatch(byPath); m != nil {
		return "USB" + m[1]
	}
	return ""
}

// unescapeUdev decodes \xNN escapes in udev link names.
func unescapeUdev(s string) string {
	if !strings.Contains(s, `\x`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) && s[i+1] == 'x' {
			if v, err := strconv.ParseUint(s[i+2:i+4], 16, 8); err == nil {
				b.WriteByte(byte(v))
				i += 3
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
