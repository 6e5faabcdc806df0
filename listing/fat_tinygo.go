//go:build tinygo && baremetal

package listing

import (
	"context"
	"fmt"
	"os"
	"path"
	"sort"

	"bonnet/device"

	"tinygo.org/x/tinyfs/fatfs"
)

// FATProvider lists a FAT volume on the bonnet's SD slot. The drive's
// mount point is ignored; there is only one volume.
type FATProvider struct {
	fat *fatfs.FATFS
}

func NewFATProvider(fat *fatfs.FATFS) *FATProvider {
	return &FATProvider{fat: fat}
}

func (p *FATProvider) List(ctx context.Context, d device.Drive) ([]Entry, error) {
	if p.fat == nil {
		return nil, fmt.Errorf("%w: %s", device.ErrNotMounted, d.ID)
	}
	var entries []Entry
	if err := p.walk(ctx, "/", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (p *FATProvider) walk(ctx context.Context, dir string, out *[]Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := p.fat.OpenFile(dir, os.O_RDONLY)
	if err != nil {
		return fmt.Errorf("listing: open %s: %w", dir, err)
	}
	infos, err := f.Readdir(0)
	_ = f.Close()
	if err != nil {
		return fmt.Errorf("listing: readdir %s: %w", dir, err)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })

	for _, fi := range infos {
		name := fi.Name()
		if name == "." || name == ".." {
			continue
		}
		full := path.Join(dir, name)
		if fi.IsDir() {
			if err := p.walk(ctx, full, out); err != nil {
				return err
			}
			continue
		}
		*out = append(*out, Entry{Path: full[1:], Size: fi.Size()})
	}
	return nil
}
