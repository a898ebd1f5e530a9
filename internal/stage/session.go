package stage

import (
	"context"
	"fmt"

	"github.com/dyluth/repostage/pkg/maven"
	"go.uber.org/zap"
)

// Session is a single staging run. Every artifact identity is written at most once
// per session, whichever traversal reaches it first.
type Session struct {
	stager    *Stager
	dest      *maven.Repository
	installed map[string]struct{}
	report    *Report
}

// Report returns the summary of what the session has written so far.
func (s *Session) Report() *Report {
	return s.report
}

// Installed reports whether id has already been written in this session.
func (s *Session) Installed(id string) bool {
	_, ok := s.installed[id]
	return ok
}

// markInstalled adds id to the installed-set, returning false if it was already there.
func (s *Session) markInstalled(id string) bool {
	if _, ok := s.installed[id]; ok {
		return false
	}
	s.installed[id] = struct{}{}
	return true
}

func checkArtifactFile(file string, artifact *maven.Artifact) error {
	if file == "" {
		return &ArtifactFileError{Artifact: artifact.ID()}
	}
	if !maven.IsRegularFile(file) {
		return &ArtifactFileError{Artifact: artifact.ID(), File: file}
	}
	return nil
}

// installArtifact writes an artifact produced by the current build through the
// installer. Artifacts taken from the source repository go through stageArtifact.
func (s *Session) installArtifact(ctx context.Context, file string, artifact *maven.Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkArtifactFile(file, artifact); err != nil {
		return fmt.Errorf("failed to install artifact %s: %w", artifact, err)
	}

	id := artifact.ID()
	if !s.markInstalled(id) {
		s.stager.logger.Debug("Not re-installing", zap.String("artifact", id), zap.String("file", file))
		return nil
	}

	if err := s.stager.installer.Install(file, artifact, s.dest); err != nil {
		return fmt.Errorf("failed to install artifact %s: %w", artifact, err)
	}
	s.report.Installed = append(s.report.Installed, id)
	return nil
}

// stageArtifact copies a repository-resident artifact and its metadata verbatim.
// Such artifacts already went through the installer transform once.
func (s *Session) stageArtifact(ctx context.Context, file string, artifact *maven.Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkArtifactFile(file, artifact); err != nil {
		return fmt.Errorf("failed to stage artifact %s: %w", artifact, err)
	}

	id := artifact.ID()
	if !s.markInstalled(id) {
		s.stager.logger.Debug("Not re-installing", zap.String("artifact", id), zap.String("file", file))
		return nil
	}

	destination := s.dest.FileOf(artifact.Coordinates)
	s.stager.logger.Debug("Staging", zap.String("file", file), zap.String("destination", destination))

	if err := maven.CopyFile(file, destination); err != nil {
		return fmt.Errorf("failed to stage artifact %s: %w", artifact, err)
	}
	for _, m := range artifact.Metadata {
		if pom, ok := m.(*maven.ProjectMetadata); ok && !s.markInstalled(pom.Coordinates().ID()) {
			s.stager.logger.Debug("Not re-installing", zap.String("artifact", pom.Coordinates().ID()))
			continue
		}
		if err := m.StoreIn(s.dest); err != nil {
			return fmt.Errorf("failed to stage artifact %s: %w", artifact, err)
		}
	}
	s.report.Staged = append(s.report.Staged, id)
	return nil
}

// InstallProjectArtifacts installs the POM, the main artifact (when it was built)
// and every attached artifact of project.
func (s *Session) InstallProjectArtifacts(ctx context.Context, project *maven.Project) error {
	if err := s.installProjectPOM(ctx, project); err != nil {
		return fmt.Errorf("failed to install project artifacts: %s: %w", project, err)
	}

	if main := project.Artifact; main != nil && main.File != "" {
		if err := s.installArtifact(ctx, main.File, main); err != nil {
			return fmt.Errorf("failed to install project artifacts: %s: %w", project, err)
		}
	}

	for _, attached := range project.Attached {
		if err := s.installArtifact(ctx, attached.File, attached); err != nil {
			return fmt.Errorf("failed to install project artifacts: %s: %w", project, err)
		}
	}
	return nil
}

// installProjectPOM installs the descriptor of project. A "pom" project's own
// artifact is its POM; any other packaging gets a separate POM artifact so the
// descriptor exists independently of the main artifact.
func (s *Session) installProjectPOM(ctx context.Context, project *maven.Project) error {
	var pom *maven.Artifact
	if project.IsPOM() {
		pom = project.Artifact
	}
	if pom == nil {
		pom = s.stager.factory.CreateProjectArtifact(project.GroupID, project.ArtifactID, project.Version)
	}

	if err := s.installArtifact(ctx, project.File, pom); err != nil {
		return fmt.Errorf("failed to install POM: %s: %w", project, err)
	}
	return nil
}

// InstallProjectParents installs the parent POMs of project. Parents from the current
// build are installed from their descriptor; the first parent without a local
// descriptor marks the build boundary, from where the chain is staged from the source
// repository.
func (s *Session) InstallProjectParents(ctx context.Context, project *maven.Project) error {
	depth := 0
	for parent := project.Parent; parent != nil; parent = parent.Parent {
		depth++
		if depth > s.stager.maxDepth {
			return fmt.Errorf("failed to install project parents: %s: %w (%d)", project, ErrParentDepth, s.stager.maxDepth)
		}

		if !parent.IsLocal() {
			if err := s.stageParentChain(ctx, parent.GroupID, parent.ArtifactID, parent.Version, depth); err != nil {
				return fmt.Errorf("failed to install project parents: %s: %w", project, err)
			}
			break
		}

		if err := s.installProjectPOM(ctx, parent); err != nil {
			return fmt.Errorf("failed to install project parents: %s: %w", project, err)
		}
	}
	return nil
}

// stageParentPOMs stages the parent chain declared by the POM at pomFile.
func (s *Session) stageParentPOMs(ctx context.Context, pomFile string) error {
	pom, err := maven.ReadPOM(pomFile)
	if err != nil {
		return err
	}
	if pom.Parent == nil {
		return nil
	}
	return s.stageParentChain(ctx, pom.Parent.GroupID, pom.Parent.ArtifactID, pom.Parent.Version, 1)
}

// stageParentChain copies the POM groupID:artifactID:version and its ancestors from the
// source repository. The walk stops at a POM without parent, at a POM missing from the
// source repository, or at an identity already written in this session.
func (s *Session) stageParentChain(ctx context.Context, groupID, artifactID, version string, depth int) error {
	for ; ; depth++ {
		if depth > s.stager.maxDepth {
			return fmt.Errorf("%w (%d) at %s:%s:%s", ErrParentDepth, s.stager.maxDepth, groupID, artifactID, version)
		}

		pom := s.stager.factory.CreateProjectArtifact(groupID, artifactID, version)
		if s.Installed(pom.ID()) {
			s.stager.logger.Debug("Not re-installing", zap.String("artifact", pom.ID()))
			return nil
		}

		pomFile := s.stager.source.FileOf(pom.Coordinates)
		if !maven.IsRegularFile(pomFile) {
			s.stager.logger.Debug("Parent POM not in source repository",
				zap.String("artifact", pom.ID()), zap.String("file", pomFile))
			return nil
		}

		if err := s.stageArtifact(ctx, pomFile, pom); err != nil {
			return err
		}

		model, err := maven.ReadPOM(pomFile)
		if err != nil {
			return err
		}
		if model.Parent == nil {
			return nil
		}
		groupID, artifactID, version = model.Parent.GroupID, model.Parent.ArtifactID, model.Parent.Version
	}
}

// InstallProjectDependencies installs the resolved dependencies of project. Dependencies
// matching a sibling project by group and artifact id are installed like build outputs,
// including their parents; all others are staged from the source repository together
// with their POM and its parent chain.
func (s *Session) InstallProjectDependencies(ctx context.Context, project *maven.Project, siblings []*maven.Project) error {
	projects := make(map[string]*maven.Project, len(siblings))
	for _, sibling := range siblings {
		projects[sibling.VersionlessKey()] = sibling
	}

	// Transitive dependencies, including those that don't contribute to the class path
	var order []string
	remaining := make(map[string]bool)
	for _, artifact := range project.Artifacts {
		key := artifact.VersionlessKey()
		if !remaining[key] {
			remaining[key] = true
			order = append(order, key)
		}
	}

	for _, key := range order {
		required, ok := projects[key]
		if !ok {
			continue
		}
		delete(projects, key)
		delete(remaining, key)

		if err := s.InstallProjectArtifacts(ctx, required); err != nil {
			return fmt.Errorf("failed to install project dependencies: %s: %w", project, err)
		}
		if err := s.InstallProjectParents(ctx, required); err != nil {
			return fmt.Errorf("failed to install project dependencies: %s: %w", project, err)
		}
	}

	for _, artifact := range project.Artifacts {
		if !remaining[artifact.VersionlessKey()] {
			continue
		}
		if err := s.stageDependency(ctx, artifact); err != nil {
			return fmt.Errorf("failed to install project dependencies: %s: %w", project, err)
		}
	}
	return nil
}

// stageDependency stages a repository-resident dependency together with the parent
// chain of its POM.
func (s *Session) stageDependency(ctx context.Context, artifact *maven.Artifact) error {
	dep, pomFile := s.dependencyArtifact(artifact)
	if pomFile != "" {
		if err := s.stageParentPOMs(ctx, pomFile); err != nil {
			return err
		}
	}
	return s.stageArtifact(ctx, artifact.File, dep)
}

// dependencyArtifact rebuilds the coordinates of a resolved dependency on its base
// version, so a timestamped snapshot lands under its -SNAPSHOT path, and attaches the
// dependency's POM from the source repository unless the POM is the artifact itself.
// The returned pomFile is empty when the source repository has no POM for it.
func (s *Session) dependencyArtifact(artifact *maven.Artifact) (*maven.Artifact, string) {
	factory := s.stager.factory
	baseVersion := artifact.BaseVersion()

	dep := factory.CreateArtifactWithClassifier(artifact.GroupID, artifact.ArtifactID, baseVersion, artifact.Type, artifact.Classifier)

	pom := factory.CreateArtifact(artifact.GroupID, artifact.ArtifactID, baseVersion, "pom")
	pomFile := s.stager.source.FileOf(pom.Coordinates)
	if !maven.IsRegularFile(pomFile) {
		return dep, ""
	}
	if !maven.SameFile(pomFile, artifact.File) {
		dep.AddMetadata(maven.NewProjectMetadata(dep, pomFile))
	}
	return dep, pomFile
}
