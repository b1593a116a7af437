// Package domain contains the core models for registered actions and the
// manifest describing the project tree they are derived from.
package domain

// ActionID names a registered action. Names double as the CLI handles the
// operator invokes, e.g. "profile-unit-tests" or "format-all".
type ActionID string

// Action is a named, independently runnable unit of orchestration work: an
// ordered step sequence plus the actions it depends on. Dependencies run
// before the action's own steps. Aggregation is one-directional; an aggregate
// references its constituents, never the reverse.
type Action struct {
	Name        ActionID
	Description string
	DependsOn   []ActionID
	Steps       []Step
}

// StepKind discriminates the step payload interpreted by the engine.
type StepKind int

const (
	// StepRun executes an external command and fails on non-zero exit.
	StepRun StepKind = iota
	// StepCleanDir removes a directory if present and recreates it empty.
	StepCleanDir
	// StepMoveMatches moves every file matching a glob between directories.
	// Zero matches is a no-op, not an error.
	StepMoveMatches
	// StepProfileReport renders every per-process profiler data file under a
	// directory into one concatenated report.
	StepProfileReport
	// StepFormatFiles feeds a tracked-file listing into a formatter command.
	StepFormatFiles
	// StepDiffCheck fails when the working tree holds uncommitted changes.
	StepDiffCheck
)

// FormatMode selects which file listing a StepFormatFiles step formats.
type FormatMode int

const (
	// FormatAll formats every tracked file matching the patterns.
	FormatAll FormatMode = iota
	// FormatChanged formats only tracked files changed since the last tag.
	FormatChanged
)

// Step is one sequentially executed unit inside an action. Steps are plain
// data; the engine interprets them. Only the field group matching Kind is set.
type Step struct {
	Kind StepKind

	// StepRun: command argv, working directory and environment overlay.
	Command []string
	Dir     string
	Env     map[string]string

	// StepCleanDir: directory to recreate.
	Path string

	// StepMoveMatches: source directory, glob, destination directory.
	FromDir string
	Glob    string
	ToDir   string

	// StepProfileReport: report generator binary, the profiled artifact, the
	// directory holding its data files, and the aggregate output file.
	Tool     string
	Artifact string
	DataDir  string
	OutFile  string

	// StepFormatFiles and StepDiffCheck: listing mode, glob patterns, the
	// formatter argv prefix and the version-controlled tree to operate on.
	Mode      FormatMode
	Patterns  []string
	Formatter []string
	WorkTree  string
}
