package config

// Manifest is the structure of the rig.yaml configuration file.
type Manifest struct {
	Version   string        `yaml:"version"`
	BuildDir  string        `yaml:"buildDir"`
	Toolchain ToolchainDTO  `yaml:"toolchain"`
	Profiling ProfilingDTO  `yaml:"profiling"`
	Format    FormatRootDTO `yaml:"format"`
	Project   ProjectDTO    `yaml:"project"`
}

// ToolchainDTO identifies the compiler and the architectures involved.
type ToolchainDTO struct {
	Compiler   string `yaml:"compiler"`
	HostArch   string `yaml:"hostArch"`
	TargetArch string `yaml:"targetArch"`
}

// ProfilingDTO carries the global profiling enable flag.
type ProfilingDTO struct {
	Enabled bool `yaml:"enabled"`
}

// FormatRootDTO carries the global formatting enable flag.
type FormatRootDTO struct {
	Enabled *bool `yaml:"enabled"`
}

// ProjectDTO represents a project in the configuration.
type ProjectDTO struct {
	Name        string       `yaml:"name"`
	Root        string       `yaml:"root"`
	Format      FormatDTO    `yaml:"format"`
	Targets     []TargetDTO  `yaml:"targets"`
	Subprojects []ProjectDTO `yaml:"subprojects"`
}

// FormatDTO represents a project's formatting configuration.
type FormatDTO struct {
	Enabled    *bool    `yaml:"enabled"`
	Script     string   `yaml:"script"`
	Patterns   []string `yaml:"patterns"`
	Formatters []string `yaml:"formatters"`
	Required   bool     `yaml:"required"`
}

// TargetDTO represents a build target definition.
type TargetDTO struct {
	Name     string      `yaml:"name"`
	Type     string      `yaml:"type"`
	Artifact string      `yaml:"artifact"`
	Profile  *ProfileDTO `yaml:"profile"`
}

// ProfileDTO represents a target's profiling registration options.
type ProfileDTO struct {
	Name      string   `yaml:"name"`
	WorkDir   string   `yaml:"workdir"`
	ReportDir string   `yaml:"reportDir"`
	Args      []string `yaml:"args"`
	Report    bool     `yaml:"report"`
}
