// Package git implements the VCS port by shelling out to the git binary.
package git

import (
	"context"
	"strings"

	"go.trai.ch/rig/internal/core/ports"
	"go.trai.ch/zerr"
)

// EmptyTree is git's well-known empty tree object. It serves as the earliest
// possible diff reference when a repository has no tags yet, so that every
// tracked file counts as changed.
const EmptyTree = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

// changedFilter selects added, copied, modified, renamed, type-changed,
// unmerged and unknown files.
const changedFilter = "ACMRTUX"

var _ ports.VCS = (*Client)(nil)

// Client implements ports.VCS on top of a command runner.
type Client struct {
	runner ports.CommandRunner
}

// NewClient creates a new Client.
func NewClient(runner ports.CommandRunner) *Client {
	return &Client{runner: runner}
}

// TrackedFiles lists tracked files matching the glob patterns.
func (c *Client) TrackedFiles(ctx context.Context, worktree string, patterns []string) ([]string, error) {
	argv := append([]string{"git", "ls-files", "--"}, patterns...)
	out, err := c.git(ctx, worktree, argv)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// ChangedFiles lists files matching the patterns that differ between the
// since ref and the working tree.
func (c *Client) ChangedFiles(ctx context.Context, worktree, since string, patterns []string) ([]string, error) {
	argv := append([]string{
		"git", "diff", "--name-only", "--diff-filter=" + changedFilter, since, "--",
	}, patterns...)
	out, err := c.git(ctx, worktree, argv)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// LastTag returns the most recent tag reachable from HEAD. A repository
// without tags yields EmptyTree, not an error, so that a diff against the
// result covers the full history.
func (c *Client) LastTag(ctx context.Context, worktree string) (string, error) {
	res, err := c.runner.Run(ctx, ports.Command{
		Argv: []string{"git", "describe", "--tags", "--abbrev=0"},
		Dir:  worktree,
	})
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return EmptyTree, nil
	}
	return strings.TrimSpace(string(res.Stdout)), nil
}

// IsDirty reports whether tracked files have uncommitted changes. Untracked
// files do not count; a checkout full of build artifacts is still clean.
func (c *Client) IsDirty(ctx context.Context, worktree string) (bool, error) {
	out, err := c.git(ctx, worktree, []string{"git", "status", "--porcelain", "--untracked-files=no"})
	if err != nil {
		return false, err
	}
	return len(strings.TrimSpace(string(out))) > 0, nil
}

func (c *Client) git(ctx context.Context, worktree string, argv []string) ([]byte, error) {
	res, err := c.runner.Run(ctx, ports.Command{Argv: argv, Dir: worktree})
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		gitErr := zerr.With(zerr.New("git command failed"), "command", strings.Join(argv, " "))
		return nil, zerr.With(gitErr, "exit_code", res.ExitCode)
	}
	return res.Stdout, nil
}

func splitLines(out []byte) []string {
	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
