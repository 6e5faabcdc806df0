//go:build linux && !tinygo

package device

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/moby/sys/mountinfo"
)

// readMounts maps device paths to mount points from a mountinfo table.
// Sources that are not paths (proc, tmpfs, ...) are skipped; the caller
// looks its partitions up by resolved device path.
func readMounts(path string) (map[string]string, error) {
	out := make(map[string]string)
	if path == "" {
		return out, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("device: read mounts: %w", err)
	}
	defer f.Close()

	infos, err := mountinfo.GetMountsFromReader(f, func(m *mountinfo.Info) (skip, stop bool) {
		return !filepath.IsAbs(m.Source), false
	})
	if err != nil {
		return nil, fmt.Errorf("device: read mounts: %w", err)
	}
	for _, m := range infos {
		dev := filepath.Clean(m.Source)
		if _, ok := out[dev]; !ok {
			out[dev] = m.Mountpoint
		}
	}
	return out, nil
}
