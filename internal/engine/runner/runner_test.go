package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rig/internal/adapters/telemetry"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports"
	"go.trai.ch/rig/internal/core/ports/mocks"
	"go.trai.ch/rig/internal/engine/runner"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	exec   *mocks.MockCommandRunner
	vcs    *mocks.MockVCS
	hasher *mocks.MockFileHasher
	logger *mocks.MockLogger
	runner *runner.Runner
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		exec:   mocks.NewMockCommandRunner(ctrl),
		vcs:    mocks.NewMockVCS(ctrl),
		hasher: mocks.NewMockFileHasher(ctrl),
		logger: mocks.NewMockLogger(ctrl),
	}
	f.runner = runner.New(f.exec, f.vcs, f.hasher, telemetry.NewNoOpTracer(), f.logger)
	return f
}

func registryWith(t *testing.T, actions ...domain.Action) *domain.Registry {
	t.Helper()
	registry := domain.NewRegistry()
	for _, action := range actions {
		require.NoError(t, registry.Add(&action))
	}
	return registry
}

func TestRun_UnknownAction(t *testing.T) {
	f := newFixture(t)

	err := f.runner.Run(context.Background(), domain.NewRegistry(), []string{"nope"})

	assert.ErrorIs(t, err, domain.ErrActionNotFound)
}

func TestRun_ExecutesStepsInOrder(t *testing.T) {
	f := newFixture(t)
	registry := registryWith(t, domain.Action{
		Name: "profile-app",
		Steps: []domain.Step{
			{Kind: domain.StepRun, Command: []string{"true"}},
			{Kind: domain.StepRun, Command: []string{"false"}},
		},
	})

	gomock.InOrder(
		f.exec.EXPECT().
			Run(gomock.Any(), ports.Command{Argv: []string{"true"}}).
			Return(ports.Result{}, nil),
		f.exec.EXPECT().
			Run(gomock.Any(), ports.Command{Argv: []string{"false"}}).
			Return(ports.Result{}, nil),
	)

	err := f.runner.Run(context.Background(), registry, []string{"profile-app"})

	require.NoError(t, err)
}

func TestRun_StopsAtFirstFailingStep(t *testing.T) {
	f := newFixture(t)
	registry := registryWith(t, domain.Action{
		Name: "profile-app",
		Steps: []domain.Step{
			{Kind: domain.StepRun, Command: []string{"./app"}},
			{Kind: domain.StepRun, Command: []string{"never-reached"}},
		},
	})

	f.exec.EXPECT().
		Run(gomock.Any(), gomock.Any()).
		Return(ports.Result{ExitCode: 3}, nil)

	err := f.runner.Run(context.Background(), registry, []string{"profile-app"})

	require.Error(t, err)
	assert.ErrorContains(t, err, "command failed")
	code, ok := domain.ErrMetadata(err, "exit_code")
	require.True(t, ok)
	assert.Equal(t, 3, code)
}

func TestRun_DependenciesRunFirstAndOnce(t *testing.T) {
	f := newFixture(t)
	registry := registryWith(t,
		domain.Action{
			Name:  "profile-app",
			Steps: []domain.Step{{Kind: domain.StepRun, Command: []string{"./app"}}},
		},
	)
	registry.Aggregate("profile-all", "run all profiling actions")
	require.NoError(t, registry.AddDependency("profile-all", "profile-app"))

	f.exec.EXPECT().
		Run(gomock.Any(), ports.Command{Argv: []string{"./app"}}).
		Return(ports.Result{}, nil).
		Times(1)

	// Naming both the aggregate and its member still runs the member once.
	err := f.runner.Run(context.Background(), registry, []string{"profile-all", "profile-app"})

	require.NoError(t, err)
}

func TestRun_CleanDirReplacesContents(t *testing.T) {
	f := newFixture(t)
	dir := filepath.Join(t.TempDir(), "reports")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stale.txt"), []byte("old"), 0o644))

	registry := registryWith(t, domain.Action{
		Name:  "clean",
		Steps: []domain.Step{{Kind: domain.StepCleanDir, Path: dir}},
	})

	err := f.runner.Run(context.Background(), registry, []string{"clean"})

	require.NoError(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_MoveMatchesRelocatesDataFiles(t *testing.T) {
	f := newFixture(t)
	from := t.TempDir()
	to := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(from, "gmon.out"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(from, "gmon.1234"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(from, "other.txt"), []byte("c"), 0o644))

	registry := registryWith(t, domain.Action{
		Name: "move",
		Steps: []domain.Step{
			{Kind: domain.StepMoveMatches, FromDir: from, Glob: "gmon.*", ToDir: to},
		},
	})

	err := f.runner.Run(context.Background(), registry, []string{"move"})

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(to, "gmon.out"))
	assert.FileExists(t, filepath.Join(to, "gmon.1234"))
	assert.NoFileExists(t, filepath.Join(from, "gmon.out"))
	assert.FileExists(t, filepath.Join(from, "other.txt"))
}

func TestRun_MoveMatchesZeroMatchesWarnsAndContinues(t *testing.T) {
	f := newFixture(t)
	from := t.TempDir()

	registry := registryWith(t, domain.Action{
		Name: "move",
		Steps: []domain.Step{
			{Kind: domain.StepMoveMatches, FromDir: from, Glob: "gmon.*", ToDir: t.TempDir()},
			{Kind: domain.StepRun, Command: []string{"true"}},
		},
	})

	f.logger.EXPECT().Warn(gomock.Any())
	f.exec.EXPECT().Run(gomock.Any(), gomock.Any()).Return(ports.Result{}, nil)

	err := f.runner.Run(context.Background(), registry, []string{"move"})

	require.NoError(t, err)
}

func TestRun_ProfileReportConcatenatesPerProcessFiles(t *testing.T) {
	f := newFixture(t)
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "gmon.100"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "gmon.200"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "notes.txt"), nil, 0o644))
	outFile := filepath.Join(dataDir, "gmon.txt")

	registry := registryWith(t, domain.Action{
		Name: "report",
		Steps: []domain.Step{
			{
				Kind:     domain.StepProfileReport,
				Tool:     "gprof",
				Artifact: "/build/app",
				DataDir:  dataDir,
				OutFile:  outFile,
			},
		},
	})

	gomock.InOrder(
		f.exec.EXPECT().
			Run(gomock.Any(), ports.Command{Argv: []string{"gprof", "/build/app", filepath.Join(dataDir, "gmon.100")}}).
			Return(ports.Result{Stdout: []byte("report-100\n")}, nil),
		f.exec.EXPECT().
			Run(gomock.Any(), ports.Command{Argv: []string{"gprof", "/build/app", filepath.Join(dataDir, "gmon.200")}}).
			Return(ports.Result{Stdout: []byte("report-200\n")}, nil),
	)

	err := f.runner.Run(context.Background(), registry, []string{"report"})

	require.NoError(t, err)
	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, "report-100\nreport-200\n", string(content))
}

func TestRun_ProfileReportToolFailure(t *testing.T) {
	f := newFixture(t)
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "gmon.7"), nil, 0o644))

	registry := registryWith(t, domain.Action{
		Name: "report",
		Steps: []domain.Step{
			{
				Kind:     domain.StepProfileReport,
				Tool:     "gprof",
				Artifact: "/build/app",
				DataDir:  dataDir,
				OutFile:  filepath.Join(dataDir, "gmon.txt"),
			},
		},
	})

	f.exec.EXPECT().
		Run(gomock.Any(), gomock.Any()).
		Return(ports.Result{ExitCode: 1}, nil)

	err := f.runner.Run(context.Background(), registry, []string{"report"})

	assert.ErrorContains(t, err, "report generation failed")
}

func TestRun_FormatAllPassesTrackedFiles(t *testing.T) {
	f := newFixture(t)
	patterns := []string{"*.c", "*.h"}
	registry := registryWith(t, domain.Action{
		Name: "format-all",
		Steps: []domain.Step{
			{
				Kind:      domain.StepFormatFiles,
				Mode:      domain.FormatAll,
				Patterns:  patterns,
				Formatter: []string{"clang-format-14", "-i"},
				WorkTree:  "/repo",
			},
		},
	})

	f.vcs.EXPECT().
		TrackedFiles(gomock.Any(), "/repo", patterns).
		Return([]string{"src/a.c", "include/a.h"}, nil)
	f.exec.EXPECT().
		Run(gomock.Any(), ports.Command{
			Argv: []string{"clang-format-14", "-i", "src/a.c", "include/a.h"},
			Dir:  "/repo",
		}).
		Return(ports.Result{}, nil)

	err := f.runner.Run(context.Background(), registry, []string{"format-all"})

	require.NoError(t, err)
}

func TestRun_FormatAllEmptyListingIsNoOp(t *testing.T) {
	f := newFixture(t)
	registry := registryWith(t, domain.Action{
		Name: "format-all",
		Steps: []domain.Step{
			{
				Kind:      domain.StepFormatFiles,
				Mode:      domain.FormatAll,
				Patterns:  []string{"*.c"},
				Formatter: []string{"clang-format", "-i"},
				WorkTree:  "/repo",
			},
		},
	})

	f.vcs.EXPECT().
		TrackedFiles(gomock.Any(), "/repo", gomock.Any()).
		Return(nil, nil)

	err := f.runner.Run(context.Background(), registry, []string{"format-all"})

	require.NoError(t, err)
}

func TestRun_FormatChangedUsesLastTag(t *testing.T) {
	f := newFixture(t)
	patterns := []string{"*.cpp"}
	registry := registryWith(t, domain.Action{
		Name: "format-diff",
		Steps: []domain.Step{
			{
				Kind:      domain.StepFormatFiles,
				Mode:      domain.FormatChanged,
				Patterns:  patterns,
				Formatter: []string{"clang-format", "-i"},
				WorkTree:  "/repo",
			},
		},
	})

	f.vcs.EXPECT().
		LastTag(gomock.Any(), "/repo").
		Return("v1.2.0", nil)
	f.vcs.EXPECT().
		ChangedFiles(gomock.Any(), "/repo", "v1.2.0", patterns).
		Return([]string{"src/new.cpp"}, nil)
	f.exec.EXPECT().
		Run(gomock.Any(), ports.Command{
			Argv: []string{"clang-format", "-i", "src/new.cpp"},
			Dir:  "/repo",
		}).
		Return(ports.Result{}, nil)

	err := f.runner.Run(context.Background(), registry, []string{"format-diff"})

	require.NoError(t, err)
}

func TestRun_DiffCheckCleanTreePasses(t *testing.T) {
	f := newFixture(t)
	patterns := []string{"*.c"}
	registry := registryWith(t, domain.Action{
		Name: "format-all-check",
		Steps: []domain.Step{
			{Kind: domain.StepDiffCheck, Patterns: patterns, WorkTree: "/repo"},
		},
	})

	f.vcs.EXPECT().
		TrackedFiles(gomock.Any(), "/repo", patterns).
		Return([]string{"a.c"}, nil)
	f.hasher.EXPECT().
		HashFiles(gomock.Any(), "/repo", []string{"a.c"}).
		Return(map[string]uint64{"a.c": 1}, nil)
	f.vcs.EXPECT().
		IsDirty(gomock.Any(), "/repo").
		Return(false, nil)

	err := f.runner.Run(context.Background(), registry, []string{"format-all-check"})

	require.NoError(t, err)
}

func TestRun_DiffCheckDirtyTreeNamesChangedFiles(t *testing.T) {
	f := newFixture(t)
	patterns := []string{"*.c"}
	registry := registryWith(t, domain.Action{
		Name: "format-all-check",
		Steps: []domain.Step{
			{Kind: domain.StepDiffCheck, Patterns: patterns, WorkTree: "/repo"},
		},
	})

	f.vcs.EXPECT().
		TrackedFiles(gomock.Any(), "/repo", patterns).
		Return([]string{"a.c", "b.c"}, nil).
		Times(2)
	gomock.InOrder(
		f.hasher.EXPECT().
			HashFiles(gomock.Any(), "/repo", []string{"a.c", "b.c"}).
			Return(map[string]uint64{"a.c": 1, "b.c": 2}, nil),
		f.hasher.EXPECT().
			HashFiles(gomock.Any(), "/repo", []string{"a.c", "b.c"}).
			Return(map[string]uint64{"a.c": 1, "b.c": 99}, nil),
	)
	f.vcs.EXPECT().
		IsDirty(gomock.Any(), "/repo").
		Return(true, nil)

	err := f.runner.Run(context.Background(), registry, []string{"format-all-check"})

	require.ErrorIs(t, err, domain.ErrUnformattedChanges)
	files, ok := domain.ErrMetadata(err, "files")
	require.True(t, ok)
	assert.Equal(t, "b.c", files)
}
