// Package runner executes registered actions step by step.
package runner

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner interprets an action's steps strictly in order, shelling out for
// the real work. Two actions writing the same report directory must not run
// concurrently; the runner itself never parallelizes.
type Runner struct {
	exec   ports.CommandRunner
	vcs    ports.VCS
	hasher ports.FileHasher
	tracer ports.Tracer
	logger ports.Logger
}

// New creates a new Runner.
func New(exec ports.CommandRunner, vcs ports.VCS, hasher ports.FileHasher, tracer ports.Tracer, logger ports.Logger) *Runner {
	return &Runner{
		exec:   exec,
		vcs:    vcs,
		hasher: hasher,
		tracer: tracer,
		logger: logger,
	}
}

// Run executes the named actions in the given order. An action's
// dependencies run before its own steps; each action runs at most once even
// when it is both named and depended upon.
func (r *Runner) Run(ctx context.Context, registry *domain.Registry, names []string) error {
	done := make(map[domain.ActionID]bool)
	for _, name := range names {
		if err := r.runAction(ctx, registry, domain.ActionID(name), done); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runAction(ctx context.Context, registry *domain.Registry, name domain.ActionID, done map[domain.ActionID]bool) error {
	if done[name] {
		return nil
	}

	action, err := registry.Get(name)
	if err != nil {
		return err
	}

	for _, dep := range action.DependsOn {
		if err := r.runAction(ctx, registry, dep, done); err != nil {
			return err
		}
	}
	done[name] = true

	if len(action.Steps) == 0 {
		return nil
	}

	ctx, span := r.tracer.Start(ctx, string(name))
	defer span.End()

	// Check actions compare file contents around the formatting steps so a
	// failure can name what changed.
	before, err := r.snapshot(ctx, action)
	if err != nil {
		span.RecordError(err)
		return err
	}

	for i, step := range action.Steps {
		if err := r.runStep(ctx, span, step, before); err != nil {
			err = zerr.With(zerr.With(err, "action", string(name)), "step", i)
			span.RecordError(err)
			return err
		}
	}
	return nil
}

// snapshot fingerprints the formatting candidates of an action that ends in
// a diff check. Other actions need no snapshot.
func (r *Runner) snapshot(ctx context.Context, action *domain.Action) (map[string]uint64, error) {
	var check *domain.Step
	for i := range action.Steps {
		if action.Steps[i].Kind == domain.StepDiffCheck {
			check = &action.Steps[i]
			break
		}
	}
	if check == nil {
		return nil, nil
	}

	files, err := r.vcs.TrackedFiles(ctx, check.WorkTree, check.Patterns)
	if err != nil {
		return nil, err
	}
	return r.hasher.HashFiles(ctx, check.WorkTree, files)
}

func (r *Runner) runStep(ctx context.Context, span ports.Span, step domain.Step, before map[string]uint64) error {
	switch step.Kind {
	case domain.StepRun:
		return r.runCommand(ctx, span, step.Command, step.Dir, step.Env)
	case domain.StepCleanDir:
		return cleanDir(step.Path)
	case domain.StepMoveMatches:
		return r.moveMatches(step)
	case domain.StepProfileReport:
		return r.profileReport(ctx, span, step)
	case domain.StepFormatFiles:
		return r.formatFiles(ctx, span, step)
	case domain.StepDiffCheck:
		return r.diffCheck(ctx, step, before)
	default:
		return zerr.With(zerr.New("unknown step kind"), "kind", int(step.Kind))
	}
}

func (r *Runner) runCommand(ctx context.Context, span ports.Span, argv []string, dir string, env map[string]string) error {
	res, err := r.exec.Run(ctx, ports.Command{Argv: argv, Dir: dir, Env: env})
	if err != nil {
		return err
	}
	_, _ = span.Write(res.Stdout)
	if res.ExitCode != 0 {
		err := zerr.With(zerr.New("command failed"), "command", strings.Join(argv, " "))
		return zerr.With(err, "exit_code", res.ExitCode)
	}
	return nil
}

func cleanDir(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to clear report directory"), "path", path)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create report directory"), "path", path)
	}
	return nil
}

// moveMatches relocates matching files. Zero matches is deliberately not an
// error; an instrumented run that produced no data files leaves an empty
// report directory behind, which is diagnosable from the logs.
func (r *Runner) moveMatches(step domain.Step) error {
	entries, err := os.ReadDir(step.FromDir)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to list directory"), "path", step.FromDir)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	matches := domain.FilterByPatterns(names, []string{step.Glob})
	if len(matches) == 0 {
		r.logger.Warn("no files matching " + step.Glob + " in " + step.FromDir)
		return nil
	}
	for _, match := range matches {
		src := filepath.Join(step.FromDir, match)
		if err := os.Rename(src, filepath.Join(step.ToDir, match)); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to move data file"), "path", src)
		}
	}
	return nil
}

// profileReport feeds every per-process data file through the report
// generator with the original artifact path and concatenates the output.
func (r *Runner) profileReport(ctx context.Context, span ports.Span, step domain.Step) error {
	entries, err := os.ReadDir(step.DataDir)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to list report directory"), "path", step.DataDir)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out, err := os.Create(step.OutFile) //nolint:gosec // path is computed from the manifest
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create report file"), "path", step.OutFile)
	}
	defer out.Close() //nolint:errcheck // best effort close in defer

	for _, name := range domain.PerProcessDataFiles(names) {
		res, err := r.exec.Run(ctx, ports.Command{
			Argv: []string{step.Tool, step.Artifact, filepath.Join(step.DataDir, name)},
		})
		if err != nil {
			return err
		}
		if res.ExitCode != 0 {
			reportErr := zerr.With(zerr.New("report generation failed"), "data_file", name)
			return zerr.With(reportErr, "exit_code", res.ExitCode)
		}
		if _, err := out.Write(res.Stdout); err != nil {
			return zerr.Wrap(err, "failed to write report")
		}
		_, _ = span.Write(res.Stdout)
	}
	return nil
}

// formatFiles resolves the file listing and feeds it to the formatter. An
// empty listing is a no-op, never an error.
func (r *Runner) formatFiles(ctx context.Context, span ports.Span, step domain.Step) error {
	var files []string
	var err error
	switch step.Mode {
	case domain.FormatAll:
		files, err = r.vcs.TrackedFiles(ctx, step.WorkTree, step.Patterns)
	case domain.FormatChanged:
		var since string
		since, err = r.vcs.LastTag(ctx, step.WorkTree)
		if err == nil {
			files, err = r.vcs.ChangedFiles(ctx, step.WorkTree, since, step.Patterns)
		}
	}
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return nil
	}

	argv := append(append([]string{}, step.Formatter...), files...)
	return r.runCommand(ctx, span, argv, step.WorkTree, nil)
}

func (r *Runner) diffCheck(ctx context.Context, step domain.Step, before map[string]uint64) error {
	dirty, err := r.vcs.IsDirty(ctx, step.WorkTree)
	if err != nil {
		return err
	}
	if !dirty {
		return nil
	}

	err = zerr.With(zerr.Wrap(domain.ErrUnformattedChanges, "worktree is dirty after formatting"), "worktree", step.WorkTree)
	if changed := r.changedSince(ctx, step, before); len(changed) > 0 {
		err = zerr.With(err, "files", strings.Join(changed, ", "))
	}
	return err
}

// changedSince diffs the pre-run fingerprints against the current tree to
// name the files the formatter touched. Best effort; the check fails on the
// dirty tree either way.
func (r *Runner) changedSince(ctx context.Context, step domain.Step, before map[string]uint64) []string {
	if before == nil {
		return nil
	}
	files, err := r.vcs.TrackedFiles(ctx, step.WorkTree, step.Patterns)
	if err != nil {
		return nil
	}
	after, err := r.hasher.HashFiles(ctx, step.WorkTree, files)
	if err != nil {
		return nil
	}

	var changed []string
	for file, sum := range after {
		if prev, ok := before[file]; !ok || prev != sum {
			changed = append(changed, file)
		}
	}
	sort.Strings(changed)
	return changed
}
