// Package reactor loads the resolved project graph exported by the build.
//
// The build writes a reactor.yml manifest describing every module of the current
// multi-module build: coordinates, packaging, descriptor, built files, parent and
// resolved dependencies. repostage never resolves anything itself; the manifest is
// taken as the complete truth about the build.
package reactor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/repostage/pkg/maven"
	"gopkg.in/yaml.v3"
)

// Manifest is the top-level reactor.yml document.
type Manifest struct {
	Version  string        `yaml:"version"`
	Root     string        `yaml:"root,omitempty"` // group:artifact of the project to stage, defaults to the first project
	Projects []ProjectSpec `yaml:"projects"`
}

// ProjectSpec describes one module of the build.
type ProjectSpec struct {
	GroupID      string         `yaml:"group_id"`
	ArtifactID   string         `yaml:"artifact_id"`
	Version      string         `yaml:"version"`
	Packaging    string         `yaml:"packaging,omitempty"` // Defaults to "jar"
	POM          string         `yaml:"pom"`                 // Descriptor path, relative to the manifest
	File         string         `yaml:"file,omitempty"`      // Main artifact file, empty when nothing was built
	Parent       *ParentSpec    `yaml:"parent,omitempty"`
	Attached     []ArtifactSpec `yaml:"attached,omitempty"`
	Dependencies []ArtifactSpec `yaml:"dependencies,omitempty"` // Resolved dependency closure
}

// ParentSpec references a parent project by coordinates.
type ParentSpec struct {
	GroupID    string `yaml:"group_id"`
	ArtifactID string `yaml:"artifact_id"`
	Version    string `yaml:"version"`
}

// ArtifactSpec describes an attached artifact or a resolved dependency. Attached
// artifacts inherit group, artifact and version from their project.
type ArtifactSpec struct {
	GroupID    string `yaml:"group_id,omitempty"`
	ArtifactID string `yaml:"artifact_id,omitempty"`
	Version    string `yaml:"version,omitempty"`
	Type       string `yaml:"type,omitempty"` // Defaults to "jar"
	Classifier string `yaml:"classifier,omitempty"`
	File       string `yaml:"file,omitempty"` // Dependencies default to their path in the source repository
}

// Reactor is the linked project graph of a build.
type Reactor struct {
	root     *maven.Project
	projects []*maven.Project
}

// Root returns the project to stage.
func (r *Reactor) Root() *maven.Project {
	return r.root
}

// Projects returns every project of the build, in manifest order.
func (r *Reactor) Projects() []*maven.Project {
	return r.projects
}

// Load reads, validates and links the manifest at path. Relative paths are resolved
// against the manifest's directory; dependencies without a file are looked up in source.
func Load(path string, source *maven.Repository, factory *maven.Factory) (*Reactor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reactor manifest: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse reactor manifest: %w", err)
	}

	if err := manifest.Validate(); err != nil {
		return nil, fmt.Errorf("invalid reactor manifest: %w", err)
	}

	base, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve manifest directory: %w", err)
	}

	return manifest.Link(base, source, factory)
}

// Validate checks required fields and uniqueness of projects.
func (m *Manifest) Validate() error {
	if m.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", m.Version)
	}
	if len(m.Projects) == 0 {
		return fmt.Errorf("no projects defined")
	}

	seen := make(map[string]bool)
	for i, p := range m.Projects {
		if p.GroupID == "" || p.ArtifactID == "" || p.Version == "" {
			return fmt.Errorf("project %d: group_id, artifact_id and version are required", i)
		}
		key := maven.VersionlessKey(p.GroupID, p.ArtifactID)
		if err := validateSegments(p.GroupID, p.ArtifactID, p.Version); err != nil {
			return fmt.Errorf("project %d: %w", i, err)
		}
		if seen[key] {
			return fmt.Errorf("duplicate project '%s'", key)
		}
		seen[key] = true

		if p.Parent != nil && (p.Parent.GroupID == "" || p.Parent.ArtifactID == "" || p.Parent.Version == "") {
			return fmt.Errorf("project '%s': parent requires group_id, artifact_id and version", key)
		}
		if p.Parent != nil {
			if err := validateSegments(p.Parent.GroupID, p.Parent.ArtifactID, p.Parent.Version); err != nil {
				return fmt.Errorf("project '%s': parent: %w", key, err)
			}
		}
		for _, a := range p.Attached {
			if err := validateSegments(a.Type, a.Classifier); err != nil {
				return fmt.Errorf("project '%s': attached artifact: %w", key, err)
			}
		}
		for _, d := range p.Dependencies {
			if d.GroupID == "" || d.ArtifactID == "" || d.Version == "" {
				return fmt.Errorf("project '%s': dependency requires group_id, artifact_id and version", key)
			}
			if err := validateSegments(d.GroupID, d.ArtifactID, d.Version, d.Type, d.Classifier); err != nil {
				return fmt.Errorf("project '%s': dependency: %w", key, err)
			}
		}
	}

	if m.Root != "" && !seen[m.Root] {
		return fmt.Errorf("root project '%s' is not part of the manifest", m.Root)
	}
	return nil
}

func validateSegments(values ...string) error {
	for _, v := range values {
		if err := maven.ValidateSegment(v); err != nil {
			return err
		}
	}
	return nil
}
