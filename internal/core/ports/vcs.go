package ports

import "context"

// VCS abstracts the version-control queries the formatting actions need.
//
//go:generate mockgen -source=vcs.go -destination=mocks/mock_vcs.go -package=mocks
type VCS interface {
	// TrackedFiles lists tracked files under worktree matching the glob
	// patterns, relative to the worktree root.
	TrackedFiles(ctx context.Context, worktree string, patterns []string) ([]string, error)

	// ChangedFiles lists tracked files matching the patterns that were
	// added, copied, modified, renamed, type-changed, unmerged or unknown
	// between the since ref and the working tree.
	ChangedFiles(ctx context.Context, worktree, since string, patterns []string) ([]string, error)

	// LastTag returns the most recent tag reachable from HEAD, falling back
	// to an earliest-possible reference when the repository has no tags.
	LastTag(ctx context.Context, worktree string) (string, error)

	// IsDirty reports whether the working tree has uncommitted changes.
	IsDirty(ctx context.Context, worktree string) (bool, error)
}
