package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/repostage/pkg/maven"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = "repostage.yml"

// DefaultMaxParentDepth is applied when max_parent_depth is not specified.
const DefaultMaxParentDepth = 64

// PolicyConfig mirrors a repository policy of the local repository
type PolicyConfig struct {
	Enabled        *bool  `yaml:"enabled,omitempty"`
	UpdatePolicy   string `yaml:"update_policy,omitempty"`   // always, daily, never or interval:N
	ChecksumPolicy string `yaml:"checksum_policy,omitempty"` // fail, warn or ignore
}

// Config represents the top-level repostage.yml configuration
type Config struct {
	Version           string        `yaml:"version"`
	LocalRepository   string        `yaml:"local_repository,omitempty"`   // Source repository, default ~/.m2/repository
	StagingRepository string        `yaml:"staging_repository,omitempty"` // Empty = stage into the local repository
	RepositoryID      string        `yaml:"repository_id,omitempty"`      // Id shared by source and staging repository
	Snapshots         *PolicyConfig `yaml:"snapshots,omitempty"`
	Releases          *PolicyConfig `yaml:"releases,omitempty"`
	Reactor           string        `yaml:"reactor,omitempty"` // Path of the reactor manifest, default reactor.yml
	Skip              bool          `yaml:"skip,omitempty"`
	MaxParentDepth    *int          `yaml:"max_parent_depth,omitempty"`
}

// Validate performs strict validation on the configuration and applies defaults
func (c *Config) Validate() error {
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	if c.LocalRepository == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("local_repository is not set and the home directory is unknown: %w", err)
		}
		c.LocalRepository = filepath.Join(home, ".m2", "repository")
	}

	if c.RepositoryID == "" {
		c.RepositoryID = "local"
	}

	if c.Reactor == "" {
		c.Reactor = "reactor.yml"
	}

	if c.MaxParentDepth == nil {
		depth := DefaultMaxParentDepth
		c.MaxParentDepth = &depth
	}
	if *c.MaxParentDepth < 1 {
		return fmt.Errorf("max_parent_depth must be >= 1, got %d", *c.MaxParentDepth)
	}

	if err := c.Snapshots.validate("snapshots"); err != nil {
		return err
	}
	if err := c.Releases.validate("releases"); err != nil {
		return err
	}

	return nil
}

func (p *PolicyConfig) validate(name string) error {
	if p == nil {
		return nil
	}
	if p.UpdatePolicy != "" {
		if err := maven.ValidateUpdatePolicy(p.UpdatePolicy); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	if p.ChecksumPolicy != "" {
		if err := maven.ValidateChecksumPolicy(p.ChecksumPolicy); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func (p *PolicyConfig) policy() maven.RepositoryPolicy {
	policy := maven.DefaultPolicy()
	if p == nil {
		return policy
	}
	if p.Enabled != nil {
		policy.Enabled = *p.Enabled
	}
	if p.UpdatePolicy != "" {
		policy.UpdatePolicy = p.UpdatePolicy
	}
	if p.ChecksumPolicy != "" {
		policy.ChecksumPolicy = p.ChecksumPolicy
	}
	return policy
}

// SourceRepository returns the local repository described by the configuration.
// Validate must have been called.
func (c *Config) SourceRepository() *maven.Repository {
	repo := maven.NewRepository(c.RepositoryID, c.LocalRepository)
	repo.Snapshots = c.Snapshots.policy()
	repo.Releases = c.Releases.policy()
	return repo
}

// Merge overlays the non-zero fields of other onto c. Skip is sticky: once set by
// either side it stays set.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Version != "" {
		c.Version = other.Version
	}
	if other.LocalRepository != "" {
		c.LocalRepository = other.LocalRepository
	}
	if other.StagingRepository != "" {
		c.StagingRepository = other.StagingRepository
	}
	if other.RepositoryID != "" {
		c.RepositoryID = other.RepositoryID
	}
	if other.Snapshots != nil {
		c.Snapshots = other.Snapshots
	}
	if other.Releases != nil {
		c.Releases = other.Releases
	}
	if other.Reactor != "" {
		c.Reactor = other.Reactor
	}
	if other.MaxParentDepth != nil {
		c.MaxParentDepth = other.MaxParentDepth
	}
	c.Skip = c.Skip || other.Skip
}

// Load reads and validates repostage.yml from the specified path
func Load(path string) (*Config, error) {
	config, err := parse(path)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func parse(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &config, nil
}
