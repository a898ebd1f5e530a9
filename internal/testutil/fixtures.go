// Package testutil provides fixtures for building source repositories, build outputs
// and project graphs in tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dyluth/repostage/pkg/maven"
	"github.com/stretchr/testify/require"
)

// Build is a temporary workspace holding a source repository and the modules of a
// multi-module build.
type Build struct {
	T       *testing.T
	Dir     string            // Build root, modules live below it
	Source  *maven.Repository // Source (local) repository
	Factory *maven.Factory
}

// NewBuild creates an empty build workspace and source repository under t.TempDir().
func NewBuild(t *testing.T) *Build {
	t.Helper()
	root := t.TempDir()

	dir := filepath.Join(root, "build")
	repo := filepath.Join(root, "repository")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.MkdirAll(repo, 0755))

	return &Build{
		T:       t,
		Dir:     dir,
		Source:  maven.NewRepository("local", repo),
		Factory: maven.NewFactory(),
	}
}

// StagingDir returns a fresh directory path for a staging repository. The directory
// itself is not created.
func (b *Build) StagingDir() string {
	return filepath.Join(b.T.TempDir(), "it-repo")
}

// POMSpec describes a descriptor to write.
type POMSpec struct {
	GroupID    string
	ArtifactID string
	Version    string
	Packaging  string
	Parent     *maven.Coordinates
}

// POMXML renders spec as a minimal descriptor.
func POMXML(spec POMSpec) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<project xmlns=\"http://maven.apache.org/POM/4.0.0\">\n")
	b.WriteString("  <modelVersion>4.0.0</modelVersion>\n")
	if p := spec.Parent; p != nil {
		fmt.Fprintf(&b, "  <parent>\n    <groupId>%s</groupId>\n    <artifactId>%s</artifactId>\n    <version>%s</version>\n  </parent>\n",
			p.GroupID, p.ArtifactID, p.Version)
	}
	fmt.Fprintf(&b, "  <groupId>%s</groupId>\n  <artifactId>%s</artifactId>\n  <version>%s</version>\n",
		spec.GroupID, spec.ArtifactID, spec.Version)
	if spec.Packaging != "" {
		fmt.Fprintf(&b, "  <packaging>%s</packaging>\n", spec.Packaging)
	}
	b.WriteString("</project>\n")
	return b.String()
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// SourcePOM writes a POM into the source repository and returns its path.
func (b *Build) SourcePOM(spec POMSpec) string {
	b.T.Helper()
	pom := b.Factory.CreateProjectArtifact(spec.GroupID, spec.ArtifactID, spec.Version)
	return WriteFile(b.T, b.Source.FileOf(pom.Coordinates), POMXML(spec))
}

// SourceArtifact writes an artifact file into the source repository and returns an
// artifact backed by it, as a resolved dependency would be.
func (b *Build) SourceArtifact(coords maven.Coordinates, content string) *maven.Artifact {
	b.T.Helper()
	a := b.Factory.CreateArtifactWithClassifier(coords.GroupID, coords.ArtifactID, coords.Version, coords.Type, coords.Classifier)
	a.File = WriteFile(b.T, b.Source.FileOf(a.Coordinates), content)
	return a
}

// Module writes the descriptor and, unless packaging is "pom", the main artifact of
// a build module, and returns the project. Parent is linked but not written.
func (b *Build) Module(spec POMSpec, parent *maven.Project) *maven.Project {
	b.T.Helper()

	if parent != nil && spec.Parent == nil {
		spec.Parent = &maven.Coordinates{GroupID: parent.GroupID, ArtifactID: parent.ArtifactID, Version: parent.Version}
	}
	packaging := spec.Packaging
	if packaging == "" {
		packaging = "jar"
	}

	dir := filepath.Join(b.Dir, spec.ArtifactID)
	project := &maven.Project{
		GroupID:    spec.GroupID,
		ArtifactID: spec.ArtifactID,
		Version:    spec.Version,
		Packaging:  packaging,
		File:       WriteFile(b.T, filepath.Join(dir, "pom.xml"), POMXML(spec)),
		Parent:     parent,
		Artifact:   b.Factory.CreateArtifact(spec.GroupID, spec.ArtifactID, spec.Version, packaging),
	}

	if packaging != maven.PackagingPOM {
		ext := maven.HandlerFor(packaging).Extension
		name := fmt.Sprintf("%s-%s.%s", spec.ArtifactID, spec.Version, ext)
		project.Artifact.File = WriteFile(b.T, filepath.Join(dir, "target", name), "built:"+spec.ArtifactID)
	}
	return project
}

// Attach adds an attached artifact with a built file to project.
func (b *Build) Attach(project *maven.Project, artifactType, classifier string) *maven.Artifact {
	b.T.Helper()
	a := b.Factory.CreateArtifactWithClassifier(project.GroupID, project.ArtifactID, project.Version, artifactType, classifier)
	name := filepath.Base(b.Source.PathOf(a.Coordinates))
	a.File = WriteFile(b.T, filepath.Join(b.Dir, project.ArtifactID, "target", name), "attached:"+a.ID())
	project.Attached = append(project.Attached, a)
	return a
}

// External returns a parent project that is not part of the current build: it has
// coordinates but no descriptor file.
func External(groupID, artifactID, version string) *maven.Project {
	return &maven.Project{
		GroupID:    groupID,
		ArtifactID: artifactID,
		Version:    version,
		Packaging:  maven.PackagingPOM,
	}
}

// Exists reports whether the artifact is present in repo.
func Exists(repo *maven.Repository, coords maven.Coordinates) bool {
	return maven.IsRegularFile(repo.FileOf(coords))
}
