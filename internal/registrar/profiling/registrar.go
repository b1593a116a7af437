// Package profiling registers instrumented-run actions for executable
// targets and maintains the profile-all aggregate.
package profiling

import (
	"fmt"
	"path/filepath"

	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// Tool is the profiler binary the instrumented runs are built for.
	Tool = "gprof"
	// Compiler is the only compiler id whose instrumentation flags we know.
	Compiler = "gcc"
	// OutPrefixEnv directs where the instrumented binary flushes its data.
	OutPrefixEnv = "GMON_OUT_PREFIX"
	// DataGlob matches the data files an instrumented run leaves behind.
	DataGlob = "gmon.*"
	// ReportFile is the aggregate report produced per target.
	ReportFile = "gmon.txt"

	// AggregateID runs every registered profiling action.
	AggregateID domain.ActionID = "profile-all"
)

// Registrar defines profiling actions in a registry. Profiling support is
// opportunistic: when the toolchain or the host cannot run instrumented
// binaries, registrations quietly register nothing.
type Registrar struct {
	registry *domain.Registry
	locator  ports.ToolLocator
	logger   ports.Logger

	enabled   bool
	toolchain domain.Toolchain
	buildDir  string
}

// New creates a Registrar bound to one configuration pass.
func New(registry *domain.Registry, locator ports.ToolLocator, logger ports.Logger, m *domain.Manifest) *Registrar {
	return &Registrar{
		registry:  registry,
		locator:   locator,
		logger:    logger,
		enabled:   m.Profiling.Enabled,
		toolchain: m.Toolchain,
		buildDir:  m.BuildDir,
	}
}

// Register defines a profiling action for the named target of the project.
// It returns the new action's id, or a zero id when registration was
// skipped. Referencing an unknown or non-executable target is a fatal
// configuration error regardless of whether profiling is available.
func (r *Registrar) Register(project *domain.Project, targetName string, spec domain.ProfileSpec) (domain.ActionID, error) {
	target, ok := project.Target(targetName)
	if !ok {
		err := zerr.Wrap(domain.ErrTargetNotFound, "cannot profile target")
		err = zerr.With(err, "target", targetName)
		return "", zerr.With(err, "project", project.Name)
	}
	if target.Type != domain.TargetExecutable {
		err := zerr.Wrap(domain.ErrTargetNotExecutable, "cannot profile target")
		err = zerr.With(err, "target", targetName)
		return "", zerr.With(err, "type", string(target.Type))
	}

	if !r.enabled {
		return "", nil
	}
	if r.toolchain.Compiler != Compiler {
		return "", nil
	}
	if r.toolchain.Cross() {
		return "", nil
	}
	gprof, found := r.locator.Find(Tool)
	if !found {
		return "", nil
	}

	name := spec.Name
	if name == "" {
		name = target.Name
	}
	workDir := spec.WorkDir
	if workDir == "" {
		workDir = r.buildDir
	}
	reportDir := spec.ReportDir
	if reportDir == "" {
		reportDir = filepath.Join(r.buildDir, "profiling", Tool+"-reports")
	}
	targetDir := filepath.Join(reportDir, name)

	artifact := target.Artifact
	if !filepath.IsAbs(artifact) {
		// The report step may run in a different directory than the
		// artifact was declared relative to.
		if abs, err := filepath.Abs(artifact); err == nil {
			artifact = abs
		}
	}

	steps := []domain.Step{
		{Kind: domain.StepCleanDir, Path: targetDir},
		{
			Kind:    domain.StepRun,
			Command: append([]string{artifact}, spec.Args...),
			Dir:     workDir,
			// The instrumented process resolves the prefix against its own
			// working directory, which is already workDir.
			Env: map[string]string{OutPrefixEnv: "gmon"},
		},
		{Kind: domain.StepMoveMatches, FromDir: workDir, Glob: DataGlob, ToDir: targetDir},
	}
	if spec.GenerateReport {
		steps = append(steps, domain.Step{
			Kind:     domain.StepProfileReport,
			Tool:     gprof,
			Artifact: artifact,
			DataDir:  targetDir,
			OutFile:  filepath.Join(targetDir, ReportFile),
		})
	}

	action := &domain.Action{
		Name:        domain.ActionID("profile-" + name),
		Description: fmt.Sprintf("run %s instrumented and collect %s data", target.Name, Tool),
		Steps:       steps,
	}
	if err := r.registry.Add(action); err != nil {
		return "", err
	}

	agg := r.registry.Aggregate(AggregateID, "run every registered profiling action")
	if err := r.registry.AddDependency(agg.Name, action.Name); err != nil {
		return "", err
	}

	return action.Name, nil
}
