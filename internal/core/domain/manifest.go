package domain

// Manifest is the parsed rig.yaml: one top-level project tree plus the
// global knobs shared by every registration in a configuration pass.
type Manifest struct {
	Version   string
	BuildDir  string
	Toolchain Toolchain
	Profiling ProfilingConfig
	Format    FormatGlobal
	Project   Project
}

// Projects flattens the project tree in pre-order, top-level first.
func (m *Manifest) Projects() []*Project {
	var res []*Project
	var walk func(p *Project)
	walk = func(p *Project) {
		res = append(res, p)
		for i := range p.Subprojects {
			walk(&p.Subprojects[i])
		}
	}
	walk(&m.Project)
	return res
}

// Toolchain identifies the compiler the tree is built with and the
// architectures involved.
type Toolchain struct {
	Compiler   string
	HostArch   string
	TargetArch string
}

// Cross reports whether the build is a cross compilation. Instrumented
// binaries cannot run on the build host in that case.
func (t Toolchain) Cross() bool {
	return t.HostArch != "" && t.TargetArch != "" && t.HostArch != t.TargetArch
}

// ProfilingConfig carries the global profiling enable flag. Profiling is
// opportunistic and off by default.
type ProfilingConfig struct {
	Enabled bool
}

// FormatGlobal carries the global formatting enable flag, on by default.
type FormatGlobal struct {
	Enabled *bool
}

// On resolves the global flag, defaulting to enabled.
func (f FormatGlobal) On() bool {
	return f.Enabled == nil || *f.Enabled
}

// Project is one unit of a multi-project tree. The top-level project is the
// outermost one; nested projects must opt in to formatting explicitly.
type Project struct {
	Name        string
	Root        string
	TopLevel    bool
	Format      FormatConfig
	Targets     []Target
	Subprojects []Project
}

// Target looks up a declared target by name.
func (p *Project) Target(name string) (*Target, bool) {
	for i := range p.Targets {
		if p.Targets[i].Name == name {
			return &p.Targets[i], true
		}
	}
	return nil, false
}

// TargetType distinguishes runnable artifacts from everything else.
type TargetType string

const (
	// TargetExecutable is a target built as a runnable binary.
	TargetExecutable TargetType = "executable"
	// TargetLibrary is a target built as a library.
	TargetLibrary TargetType = "library"
)

// Target is a declared build target of a project.
type Target struct {
	Name     string
	Type     TargetType
	Artifact string
	Profile  *ProfileSpec
}

// ProfileSpec is the per-target profiling registration record. Zero values
// fall back to the registrar's defaults.
type ProfileSpec struct {
	Name           string
	WorkDir        string
	ReportDir      string
	Args           []string
	GenerateReport bool
}

// FormatConfig is the per-project formatting registration record.
type FormatConfig struct {
	// Enabled defaults to true for the top-level project and false for
	// nested ones. A non-nil value overrides the default either way.
	Enabled *bool
	// Script is an explicit format script path. When set it must exist.
	Script string
	// Patterns are the glob patterns selecting formattable files.
	Patterns []string
	// Formatters are formatter binary candidates, most specific first.
	Formatters []string
	// Required escalates every soft skip into a configuration error.
	Required bool
}

// EnabledFor resolves the per-project flag against its positional default.
func (c FormatConfig) EnabledFor(topLevel bool) bool {
	if c.Enabled != nil {
		return *c.Enabled
	}
	return topLevel
}
