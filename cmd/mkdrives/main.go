//go:build !tinygo

// Command mkdrives fills a directory with simulated drives for the
// viewer's dir device mode: one subdirectory per drive.
//
//	mkdrives --root /tmp/drives USB1=./photos SDCARD1=37
//
// PORT=DIR copies a host tree onto the drive; PORT=N writes N sample files.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func main() {
	if err := newCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCmd() *cobra.Command {
	var root string
	var clean bool
	cmd := &cobra.Command{
		Use:          "mkdrives --root DIR PORT=SRC|PORT=N...",
		Short:        "Build simulated drives for the viewer's dir mode",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if root == "" {
				return errors.New("--root is required")
			}
			for _, arg := range args {
				port, src, ok := strings.Cut(arg, "=")
				if !ok || port == "" || src == "" {
					return fmt.Errorf("bad drive %q: want PORT=DIR or PORT=N", arg)
				}
				files, bytes, err := buildDrive(root, port, src, clean)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d files, %s\n", port, files, humanize.Bytes(bytes))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "Drive root directory (devices.root in the config).")
	cmd.Flags().BoolVar(&clean, "clean", false, "Remove an existing drive directory first.")
	return cmd
}

func buildDrive(root, port, src string, clean bool) (files int, size uint64, err error) {
	dst := filepath.Join(root, port)
	if clean {
		if err := os.RemoveAll(dst); err != nil {
			return 0, 0, fmt.Errorf("clean %q: %w", dst, err)
		}
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return 0, 0, fmt.Errorf("mkdir %q: %w", dst, err)
	}
	if n, convErr := strconv.Atoi(src); convErr == nil {
		return writeSamples(dst, n)
	}
	return copyTree(src, dst)
}

// writeSamples writes n text files of growing size so listings page and pan.
func writeSamples(dst string, n int) (int, uint64, error) {
	if n < 0 {
		return 0, 0, fmt.Errorf("negative file count %d", n)
	}
	var total uint64
	for i := 1; i <= n; i++ {
		name := fmt.Sprintf("file%03d.txt", i)
		if i%10 == 0 {
			name = filepath.Join(fmt.Sprintf("dir%02d", i/10), "a_rather_long_file_name_"+name)
		}
		p := filepath.Join(dst, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return 0, 0, err
		}
		data := []byte(strings.Repeat("bonnet\n", i*3))
		if err := os.WriteFile(p, data, 0o644); err != nil {
			return 0, 0, fmt.Errorf("write %q: %w", p, err)
		}
		total += uint64(len(data))
	}
	return n, total, nil
}

func copyTree(srcDir, dst string) (int, uint64, error) {
	srcDir = filepath.Clean(srcDir)
	st, err := os.Stat(srcDir)
	if err != nil {
		return 0, 0, fmt.Errorf("stat src %q: %w", srcDir, err)
	}
	if !st.IsDir() {
		return 0, 0, fmt.Errorf("src %q is not a directory", srcDir)
	}

	var dirs, files []string
	walkErr := filepath.WalkDir(srcDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == srcDir || entry.Type()&os.ModeSymlink != 0 {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		switch {
		case entry.IsDir():
			dirs = append(dirs, rel)
		case entry.Type().IsRegular():
			files = append(files, rel)
		}
		return nil
	})
	if walkErr != nil {
		return 0, 0, fmt.Errorf("walk src %q: %w", srcDir, walkErr)
	}

	sort.Strings(dirs)
	sort.Strings(files)

	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dst, d), 0o755); err != nil {
			return 0, 0, fmt.Errorf("mkdir %q: %w", d, err)
		}
	}
	var total uint64
	for _, f := range files {
		n, err := copyFile(filepath.Join(srcDir, f), filepath.Join(dst, f))
		if err != nil {
			return 0, 0, err
		}
		total += uint64(n)
	}
	return len(files), total, nil
}

func copyFile(from, to string) (int64, error) {
	in, err := os.Open(from)
	if err != nil {
		return 0, fmt.Errorf("open %q: %w", from, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(to)
	if err != nil {
		return 0, fmt.Errorf("create %q: %w", to, err)
	}
	n, err := io.Copy(out, in)
	if err != nil {
		_ = out.Close()
		return 0, fmt.Errorf("copy %q: %w", from, err)
	}
	if err := out.Close(); err != nil {
		return 0, fmt.Errorf("close %q: %w", to, err)
	}
	return n, nil
}
