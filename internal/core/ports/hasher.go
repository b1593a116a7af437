package ports

import "context"

// FileHasher fingerprints file contents. The check actions use it to name
// the files a formatting run touched.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type FileHasher interface {
	// HashFiles returns a content hash per file, keyed by the given path.
	// Files that cannot be read are left out of the result.
	HashFiles(ctx context.Context, root string, files []string) (map[string]uint64, error)
}
