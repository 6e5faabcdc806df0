package device

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// DirScanner simulates drives with directories: every subdirectory of
// Root is a mounted drive named after it.
type DirScanner struct {
	Root string
}

func (s *DirScanner) WatchPaths() []string {
	return []string{s.Root}
}

func (s *DirScanner) Scan(ctx context.Context) ([]Drive, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("device: read %s: %w", s.Root, err)
	}
	var drives []Drive
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !e.IsDir() {
			continue
		}
		p := filepath.Join(s.Root, e.Name())
		drives = append(drives, Drive{
			ID:         "sim:" + e.Name(),
			Port:       e.Name(),
			MountPoint: p,
		})
	}
	sort.Slice(drives, func(i, j int) bool { return drives[i].ID < drives[j].ID })
	return drives, nil
}
