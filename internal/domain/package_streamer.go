package domain

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"stunt.dev/pkg/stunt/internal/adapter"
	m "stunt.dev/pkg/stunt/internal/model"
)

// PackageStreamer discovers package directories under a set of root paths
// and streams them for planning.
type PackageStreamer interface {
	// Get streams package directories. The channel closes when discovery is
	// done or ctx is cancelled; check ctx.Err() after the channel closes.
	Get(ctx context.Context, paths []m.Path, exclude []string, threads int) <-chan m.Path
}

type packageStreamer struct {
	adapter.SourceFSAdapter
}

// NewPackageStreamer creates a PackageStreamer backed by the filesystem
// adapter.
func NewPackageStreamer(fsAdapter adapter.SourceFSAdapter) PackageStreamer {
	return &packageStreamer{SourceFSAdapter: fsAdapter}
}

// Get walks each root and emits every directory holding at least one Go
// file, deduplicated and sorted for deterministic ordering across runs.
func (ps *packageStreamer) Get(ctx context.Context, paths []m.Path, exclude []string, threads int) <-chan m.Path {
	slog.Debug("Starting package discovery", "paths", len(paths), "threads", threads)
	ch := make(chan m.Path, ps.normalizeBufferSize(threads))

	go func() {
		defer close(ch)

		dirs, err := ps.discover(paths, exclude)
		if err != nil {
			slog.Error("Failed to discover packages", "error", err)
			return
		}

		slog.Debug("Discovered packages", "count", len(dirs))

		for _, dir := range dirs {
			select {
			case <-ctx.Done():
				slog.Debug("Package streaming cancelled")
				return
			case ch <- dir:
			}
		}
	}()

	return ch
}

func (ps *packageStreamer) normalizeBufferSize(threads int) int {
	if threads <= 0 {
		return 1
	}

	return threads
}

func (ps *packageStreamer) discover(paths []m.Path, exclude []string) ([]m.Path, error) {
	found := map[m.Path]struct{}{}

	for _, root := range paths {
		info, err := ps.FileInfo(root)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if strings.HasSuffix(string(root), ".go") {
				found[m.Path(filepath.Dir(string(root)))] = struct{}{}
			}

			continue
		}

		err = ps.Walk(root, true, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				if skipDir(path, exclude) {
					return filepath.SkipDir
				}

				return nil
			}

			if strings.HasSuffix(path, ".go") {
				found[m.Path(filepath.Dir(path))] = struct{}{}
			}

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	dirs := make([]m.Path, 0, len(found))
	for dir := range found {
		dirs = append(dirs, dir)
	}

	sort.Slice(dirs, func(i, j int) bool { return dirs[i] < dirs[j] })

	return dirs, nil
}

// skipDir filters vendor trees, hidden directories and user-excluded
// patterns. Patterns match against the directory base name.
func skipDir(path string, exclude []string) bool {
	base := filepath.Base(path)

	if base == "vendor" || base == "testdata" || base == "node_modules" {
		return true
	}

	if strings.HasPrefix(base, ".") && base != "." {
		return true
	}

	if strings.HasPrefix(base, "_") {
		return true
	}

	for _, pattern := range exclude {
		if matched, err := filepath.Match(pattern, base); err == nil && matched {
			return true
		}
	}

	return false
}
