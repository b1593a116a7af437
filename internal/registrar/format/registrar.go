// Package format registers source-formatting actions per project: format
// everything tracked, or only what changed since the last tag.
package format

import (
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	// DefaultPatterns cover the common C and C++ source and header names.
	DefaultPatterns = []string{"*.c", "*.h", "*.cpp", "*.cc", "*.hpp"}

	// DefaultFormatters is the formatter preference list, newest first with
	// the generic name last.
	DefaultFormatters = []string{
		"clang-format-14",
		"clang-format-13",
		"clang-format-12",
		"clang-format-11",
		"clang-format",
	}

	// scriptNames are the conventional per-project format script locations,
	// relative to the project root.
	scriptNames = []string{
		filepath.Join("scripts", "clang-format.sh"),
		filepath.Join("scripts", "clang-format.bash"),
	}
)

// IDs holds the namespaced action ids of one successful registration.
type IDs struct {
	All  domain.ActionID
	Diff domain.ActionID
}

// Registrar defines formatting actions in a registry.
type Registrar struct {
	registry *domain.Registry
	locator  ports.ToolLocator
	logger   ports.Logger
	enabled  bool
}

// New creates a Registrar bound to one configuration pass.
func New(registry *domain.Registry, locator ports.ToolLocator, logger ports.Logger, m *domain.Manifest) *Registrar {
	return &Registrar{
		registry: registry,
		locator:  locator,
		logger:   logger,
		enabled:  m.Format.On(),
	}
}

// Register defines the formatting actions for one project. A zero IDs value
// means registration was skipped. Skips escalate to configuration errors
// when the project marks formatting as required; an explicit script path
// that does not exist is always fatal.
func (r *Registrar) Register(project *domain.Project) (IDs, error) {
	cfg := project.Format

	if !r.enabled {
		return r.skip(project, "formatting globally disabled")
	}
	if !cfg.EnabledFor(project.TopLevel) {
		return r.skip(project, "formatting disabled for project")
	}

	allSteps, diffSteps, err := r.resolveSteps(project)
	if err != nil {
		return IDs{}, err
	}
	if allSteps == nil {
		return r.skip(project, "no format script or formatter binary found")
	}

	ids := IDs{
		All:  domain.ActionID("format-all-" + project.Name),
		Diff: domain.ActionID("format-diff-" + project.Name),
	}
	if err := r.add(ids.All, "format all tracked files of "+project.Name, allSteps); err != nil {
		return IDs{}, err
	}
	if err := r.add(ids.Diff, "format files changed since the last tag in "+project.Name, diffSteps); err != nil {
		return IDs{}, err
	}

	if project.TopLevel {
		// Unqualified duplicates rather than aliases: the underlying runner
		// has no alias notion, so the top-level names carry the same steps.
		if err := r.add("format-all", "format all tracked files", slices.Clone(allSteps)); err != nil {
			return IDs{}, err
		}
		if err := r.add("format-diff", "format files changed since the last tag", slices.Clone(diffSteps)); err != nil {
			return IDs{}, err
		}

		check := domain.Step{Kind: domain.StepDiffCheck, Patterns: cfg.Patterns, WorkTree: project.Root}
		if check.Patterns == nil {
			check.Patterns = DefaultPatterns
		}
		if err := r.add("format-all-check", "fail when formatting all files produces a diff",
			append(slices.Clone(allSteps), check)); err != nil {
			return IDs{}, err
		}
		if err := r.add("format-diff-check", "fail when formatting changed files produces a diff",
			append(slices.Clone(diffSteps), check)); err != nil {
			return IDs{}, err
		}
	}

	return ids, nil
}

// resolveSteps picks how the project gets formatted: explicit script,
// discovered script, or a located formatter binary. A nil result with nil
// error means nothing was resolvable.
func (r *Registrar) resolveSteps(project *domain.Project) (allSteps, diffSteps []domain.Step, err error) {
	cfg := project.Format

	if cfg.Script != "" {
		if _, statErr := os.Stat(cfg.Script); statErr != nil {
			// The manifest promised this script exists; never fall back.
			err := zerr.Wrap(domain.ErrScriptNotFound, "configured format script missing")
			err = zerr.With(err, "script", cfg.Script)
			return nil, nil, zerr.With(err, "project", project.Name)
		}
		return scriptSteps(cfg.Script, project.Root)
	}

	for _, rel := range scriptNames {
		script := filepath.Join(project.Root, rel)
		if _, statErr := os.Stat(script); statErr == nil {
			return scriptSteps(script, project.Root)
		}
	}

	formatters := cfg.Formatters
	if formatters == nil {
		formatters = DefaultFormatters
	}
	bin, found := r.locator.Find(formatters...)
	if !found {
		return nil, nil, nil
	}

	patterns := cfg.Patterns
	if patterns == nil {
		patterns = DefaultPatterns
	}
	formatter := []string{bin, "-i"}

	allSteps = []domain.Step{{
		Kind:      domain.StepFormatFiles,
		Mode:      domain.FormatAll,
		Patterns:  patterns,
		Formatter: formatter,
		WorkTree:  project.Root,
	}}
	diffSteps = []domain.Step{{
		Kind:      domain.StepFormatFiles,
		Mode:      domain.FormatChanged,
		Patterns:  patterns,
		Formatter: formatter,
		WorkTree:  project.Root,
	}}
	return allSteps, diffSteps, nil
}

func scriptSteps(script, root string) (allSteps, diffSteps []domain.Step, err error) {
	// The script owns all interpretation of "all" and "diff".
	allSteps = []domain.Step{{Kind: domain.StepRun, Command: []string{script, "all"}, Dir: root}}
	diffSteps = []domain.Step{{Kind: domain.StepRun, Command: []string{script, "diff"}, Dir: root}}
	return allSteps, diffSteps, nil
}

func (r *Registrar) add(name domain.ActionID, description string, steps []domain.Step) error {
	return r.registry.Add(&domain.Action{
		Name:        name,
		Description: description,
		Steps:       steps,
	})
}

func (r *Registrar) skip(project *domain.Project, reason string) (IDs, error) {
	if project.Format.Required {
		err := zerr.Wrap(domain.ErrFormatterUnavailable, "formatting is required")
		err = zerr.With(err, "project", project.Name)
		return IDs{}, zerr.With(err, "reason", reason)
	}
	r.logger.Warn("skipping format registration for " + project.Name + ": " + reason)
	return IDs{}, nil
}
