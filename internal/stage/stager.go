// Package stage installs the outputs of a build, their parent POMs and their resolved
// dependencies into an isolated repository for integration tests.
package stage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/repostage/pkg/maven"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultMaxParentDepth bounds parent chain walks when Options.MaxParentDepth is zero.
const DefaultMaxParentDepth = 64

// Options wires the collaborators of a Stager.
type Options struct {
	Installer      maven.Installer   // Writes freshly built artifacts, required
	Factory        *maven.Factory    // Creates POM and dependency artifacts, defaults to maven.NewFactory()
	Source         *maven.Repository // Local repository consulted for repository-resident files, required
	Logger         *zap.Logger       // Defaults to a no-op logger
	MaxParentDepth int               // Upper bound on parent chain length, 0 = DefaultMaxParentDepth
	Skip           bool              // Disable the whole run
}

// Stager stages projects into a repository.
type Stager struct {
	installer maven.Installer
	factory   *maven.Factory
	source    *maven.Repository
	logger    *zap.Logger
	maxDepth  int
	skip      bool
}

// New validates opts and creates a Stager.
func New(opts Options) (*Stager, error) {
	if opts.Installer == nil {
		return nil, fmt.Errorf("installer is required")
	}
	if opts.Source == nil {
		return nil, fmt.Errorf("source repository is required")
	}
	if opts.MaxParentDepth < 0 {
		return nil, fmt.Errorf("max parent depth must be >= 0, got %d", opts.MaxParentDepth)
	}

	s := &Stager{
		installer: opts.Installer,
		factory:   opts.Factory,
		source:    opts.Source,
		logger:    opts.Logger,
		maxDepth:  opts.MaxParentDepth,
		skip:      opts.Skip,
	}
	if s.factory == nil {
		s.factory = maven.NewFactory()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.maxDepth == 0 {
		s.maxDepth = DefaultMaxParentDepth
	}
	return s, nil
}

// Request describes one staging run.
type Request struct {
	Project     *maven.Project   // Project whose outputs and dependencies are staged
	Siblings    []*maven.Project // Projects of the current multi-module build
	StagingPath string           // Base directory of the staging repository, empty = stage into the source repository
}

// Report summarises a staging run.
type Report struct {
	RunID      string   `json:"run_id"`
	Repository string   `json:"repository,omitempty"` // Base directory written to
	Installed  []string `json:"installed"`            // Identities written through the installer
	Staged     []string `json:"staged"`               // Identities copied from the source repository
	Skipped    bool     `json:"skipped"`
}

// Run stages req.Project: its own artifacts, its parent chain and its dependency
// closure. The first failure aborts the run; whatever was written stays in place.
func (s *Stager) Run(ctx context.Context, req Request) (*Report, error) {
	if s.skip {
		s.logger.Info("Skipping artifact installation per configuration.")
		return &Report{Skipped: true, Installed: []string{}, Staged: []string{}}, nil
	}
	if req.Project == nil {
		return nil, fmt.Errorf("project is required")
	}

	dest, err := StagingRepository(s.source, req.StagingPath)
	if err != nil {
		return nil, err
	}

	session := s.Begin(dest)
	s.logger.Info("Staging project",
		zap.String("run_id", session.report.RunID),
		zap.Stringer("project", req.Project),
		zap.String("repository", dest.Basedir))

	if err := session.InstallProjectArtifacts(ctx, req.Project); err != nil {
		return nil, err
	}
	if err := session.InstallProjectParents(ctx, req.Project); err != nil {
		return nil, err
	}
	if err := session.InstallProjectDependencies(ctx, req.Project, req.Siblings); err != nil {
		return nil, err
	}

	report := session.Report()
	s.logger.Info("Staging complete",
		zap.String("run_id", report.RunID),
		zap.Int("installed", len(report.Installed)),
		zap.Int("staged", len(report.Staged)))
	return report, nil
}

// StagingRepository returns the repository to stage into. With an empty path the
// source repository itself is used; otherwise the directory is created and a
// repository with the source's id, layout and policies is rooted there.
func StagingRepository(source *maven.Repository, path string) (*maven.Repository, error) {
	if path == "" {
		return source, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create local repository: %s: %w", path, err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("failed to create local repository: %s: %w", path, err)
	}
	return source.WithBasedir(abs), nil
}

// Begin starts a session writing into dest with an empty installed-set.
func (s *Stager) Begin(dest *maven.Repository) *Session {
	return &Session{
		stager:    s,
		dest:      dest,
		installed: make(map[string]struct{}),
		report: &Report{
			RunID:      uuid.New().String(),
			Repository: dest.Basedir,
			Installed:  []string{},
			Staged:     []string{},
		},
	}
}
