// Package fs provides filesystem helpers for fingerprinting file contents.
package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/rig/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.FileHasher = (*Hasher)(nil)

// Hasher fingerprints file contents with XXHash.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashFiles hashes the given files (relative to root) concurrently. Files
// that disappear between listing and hashing are skipped; the check actions
// compare against the post-formatting tree, where a vanished file shows up
// through the version-control status anyway.
func (h *Hasher) HashFiles(ctx context.Context, root string, files []string) (map[string]uint64, error) {
	res := make(map[string]uint64, len(files))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sum, err := hashFile(filepath.Join(root, file))
			if err != nil {
				if os.IsNotExist(err) {
					return nil
				}
				return zerr.With(zerr.Wrap(err, "failed to hash file"), "path", file)
			}
			mu.Lock()
			res[file] = sum
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func hashFile(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from a VCS listing
	if err != nil {
		return 0, err
	}
	defer f.Close() //nolint:errcheck // best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, err
	}
	return hasher.Sum64(), nil
}
