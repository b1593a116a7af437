// Package config provides the manifest loader for rig.
package config

import (
	"bytes"
	"os"
	"path/filepath"

	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the conventional manifest name.
const DefaultFilename = "rig.yaml"

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
}

// Load reads the manifest from the given working directory.
func (l *FileConfigLoader) Load(cwd string) (*domain.Manifest, error) {
	name := l.Filename
	if name == "" {
		name = DefaultFilename
	}
	return Load(filepath.Join(cwd, name))
}

// Load reads a manifest file from the given path. Unknown keys are rejected;
// a misspelled option must fail the configuration pass, not silently default.
func Load(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read manifest")
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var dto Manifest
	if err := dec.Decode(&dto); err != nil {
		return nil, zerr.Wrap(err, "failed to parse manifest")
	}

	m := &domain.Manifest{
		Version:  dto.Version,
		BuildDir: dto.BuildDir,
		Toolchain: domain.Toolchain{
			Compiler:   dto.Toolchain.Compiler,
			HostArch:   dto.Toolchain.HostArch,
			TargetArch: dto.Toolchain.TargetArch,
		},
		Profiling: domain.ProfilingConfig{Enabled: dto.Profiling.Enabled},
		Format:    domain.FormatGlobal{Enabled: dto.Format.Enabled},
	}
	if m.BuildDir == "" {
		m.BuildDir = "build"
	}

	project, err := convertProject(dto.Project, true)
	if err != nil {
		return nil, err
	}
	m.Project = *project

	if err := validateProjectNames(m); err != nil {
		return nil, err
	}

	return m, nil
}

func convertProject(dto ProjectDTO, topLevel bool) (*domain.Project, error) {
	if dto.Name == "" {
		return nil, zerr.New("project name is required")
	}

	p := &domain.Project{
		Name:     dto.Name,
		Root:     dto.Root,
		TopLevel: topLevel,
		Format: domain.FormatConfig{
			Enabled:    dto.Format.Enabled,
			Script:     dto.Format.Script,
			Patterns:   dto.Format.Patterns,
			Formatters: dto.Format.Formatters,
			Required:   dto.Format.Required,
		},
	}
	if p.Root == "" {
		p.Root = "."
	}

	seen := make(map[string]bool, len(dto.Targets))
	for _, t := range dto.Targets {
		if seen[t.Name] {
			err := zerr.With(zerr.New("duplicate target"), "target", t.Name)
			return nil, zerr.With(err, "project", dto.Name)
		}
		seen[t.Name] = true

		target, err := convertTarget(t)
		if err != nil {
			return nil, err
		}
		p.Targets = append(p.Targets, *target)
	}

	for _, sub := range dto.Subprojects {
		converted, err := convertProject(sub, false)
		if err != nil {
			return nil, err
		}
		p.Subprojects = append(p.Subprojects, *converted)
	}

	return p, nil
}

func convertTarget(dto TargetDTO) (*domain.Target, error) {
	if dto.Name == "" {
		return nil, zerr.New("target name is required")
	}

	var typ domain.TargetType
	switch dto.Type {
	case "", string(domain.TargetExecutable):
		typ = domain.TargetExecutable
	case string(domain.TargetLibrary):
		typ = domain.TargetLibrary
	default:
		err := zerr.With(zerr.New("unknown target type"), "target", dto.Name)
		return nil, zerr.With(err, "type", dto.Type)
	}

	t := &domain.Target{
		Name:     dto.Name,
		Type:     typ,
		Artifact: dto.Artifact,
	}
	if t.Artifact == "" {
		t.Artifact = dto.Name
	}

	if dto.Profile != nil {
		t.Profile = &domain.ProfileSpec{
			Name:           dto.Profile.Name,
			WorkDir:        dto.Profile.WorkDir,
			ReportDir:      dto.Profile.ReportDir,
			Args:           dto.Profile.Args,
			GenerateReport: dto.Profile.Report,
		}
	}

	return t, nil
}

// validateProjectNames rejects duplicate project names; formatting actions
// are namespaced by project, so a collision would surface later as an
// action-name clash with a worse message.
func validateProjectNames(m *domain.Manifest) error {
	seen := make(map[string]bool)
	for _, p := range m.Projects() {
		if seen[p.Name] {
			return zerr.With(zerr.New("duplicate project name"), "project", p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}
