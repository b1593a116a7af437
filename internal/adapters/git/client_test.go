package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rig/internal/adapters/git"
	"go.trai.ch/rig/internal/core/ports"
	"go.trai.ch/rig/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestClient_TrackedFiles(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockCommandRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), ports.Command{
		Argv: []string{"git", "ls-files", "--", "*.c", "*.h"},
		Dir:  "/repo",
	}).Return(ports.Result{Stdout: []byte("src/main.c\ninclude/api.h\n")}, nil)

	c := git.NewClient(runner)
	files, err := c.TrackedFiles(context.Background(), "/repo", []string{"*.c", "*.h"})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/main.c", "include/api.h"}, files)
}

func TestClient_TrackedFiles_EmptyOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockCommandRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(ports.Result{Stdout: []byte("\n")}, nil)

	c := git.NewClient(runner)
	files, err := c.TrackedFiles(context.Background(), "/repo", []string{"*.c"})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestClient_ChangedFiles_DiffFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockCommandRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), ports.Command{
		Argv: []string{"git", "diff", "--name-only", "--diff-filter=ACMRTUX", "v1.2.0", "--", "*.c"},
		Dir:  "/repo",
	}).Return(ports.Result{Stdout: []byte("src/changed.c\n")}, nil)

	c := git.NewClient(runner)
	files, err := c.ChangedFiles(context.Background(), "/repo", "v1.2.0", []string{"*.c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/changed.c"}, files)
}

func TestClient_LastTag(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockCommandRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), ports.Command{
		Argv: []string{"git", "describe", "--tags", "--abbrev=0"},
		Dir:  "/repo",
	}).Return(ports.Result{Stdout: []byte("v1.2.0\n")}, nil)

	c := git.NewClient(runner)
	tag, err := c.LastTag(context.Background(), "/repo")
	require.NoError(t, err)
	assert.Equal(t, "v1.2.0", tag)
}

func TestClient_LastTag_FallsBackToEmptyTree(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// git describe exits non-zero when no tag is reachable.
	runner := mocks.NewMockCommandRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(ports.Result{ExitCode: 128}, nil)

	c := git.NewClient(runner)
	tag, err := c.LastTag(context.Background(), "/repo")
	require.NoError(t, err)
	assert.Equal(t, git.EmptyTree, tag)
}

func TestClient_IsDirty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockCommandRunner(ctrl)
	// Untracked files must not count as dirt, so the status listing is
	// restricted to tracked files.
	runner.EXPECT().Run(gomock.Any(), ports.Command{
		Argv: []string{"git", "status", "--porcelain", "--untracked-files=no"},
		Dir:  "/repo",
	}).Return(ports.Result{Stdout: []byte(" M src/main.c\n")}, nil)
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(ports.Result{Stdout: nil}, nil)

	c := git.NewClient(runner)

	dirty, err := c.IsDirty(context.Background(), "/repo")
	require.NoError(t, err)
	assert.True(t, dirty)

	clean, err := c.IsDirty(context.Background(), "/repo")
	require.NoError(t, err)
	assert.False(t, clean)
}

func TestClient_GitFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockCommandRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(ports.Result{ExitCode: 129}, nil)

	c := git.NewClient(runner)
	_, err := c.TrackedFiles(context.Background(), "/repo", []string{"*.c"})
	assert.Error(t, err)
}
