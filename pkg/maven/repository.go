package maven

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Update policies understood by the build tool.
const (
	UpdatePolicyAlways   = "always"
	UpdatePolicyDaily    = "daily"
	UpdatePolicyNever    = "never"
	UpdatePolicyInterval = "interval"
)

// Checksum policies understood by the build tool.
const (
	ChecksumPolicyFail   = "fail"
	ChecksumPolicyWarn   = "warn"
	ChecksumPolicyIgnore = "ignore"
)

// RepositoryPolicy controls how the build tool refreshes snapshots or releases from a
// repository. repostage never interprets it, it is carried verbatim.
type RepositoryPolicy struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	UpdatePolicy   string `json:"update_policy" yaml:"update_policy"`     // always, daily, never or interval:MINUTES
	ChecksumPolicy string `json:"checksum_policy" yaml:"checksum_policy"` // fail, warn or ignore
}

// DefaultPolicy returns the policy the build tool applies when none is configured.
func DefaultPolicy() RepositoryPolicy {
	return RepositoryPolicy{
		Enabled:        true,
		UpdatePolicy:   UpdatePolicyDaily,
		ChecksumPolicy: ChecksumPolicyWarn,
	}
}

// ValidateUpdatePolicy checks an update policy string.
func ValidateUpdatePolicy(policy string) error {
	switch policy {
	case UpdatePolicyAlways, UpdatePolicyDaily, UpdatePolicyNever:
		return nil
	}
	if minutes, ok := strings.CutPrefix(policy, UpdatePolicyInterval+":"); ok && minutes != "" {
		for _, r := range minutes {
			if r < '0' || r > '9' {
				return fmt.Errorf("invalid update policy: %s (interval must be a number of minutes)", policy)
			}
		}
		return nil
	}
	return fmt.Errorf("invalid update policy: %s (must be 'always', 'daily', 'never' or 'interval:N')", policy)
}

// ValidateChecksumPolicy checks a checksum policy string.
func ValidateChecksumPolicy(policy string) error {
	switch policy {
	case ChecksumPolicyFail, ChecksumPolicyWarn, ChecksumPolicyIgnore:
		return nil
	}
	return fmt.Errorf("invalid checksum policy: %s (must be 'fail', 'warn' or 'ignore')", policy)
}

// Repository is a base directory plus the layout used to address artifacts in it.
type Repository struct {
	ID        string
	Basedir   string
	Layout    Layout
	Snapshots RepositoryPolicy
	Releases  RepositoryPolicy
}

// NewRepository creates a repository with the default layout and policies.
func NewRepository(id, basedir string) *Repository {
	return &Repository{
		ID:        id,
		Basedir:   basedir,
		Layout:    DefaultLayout{},
		Snapshots: DefaultPolicy(),
		Releases:  DefaultPolicy(),
	}
}

// WithBasedir returns a copy of the repository rooted at basedir. Id, layout and
// policies are kept so the copy is indistinguishable from the original apart from
// its location.
func (r *Repository) WithBasedir(basedir string) *Repository {
	clone := *r
	clone.Basedir = basedir
	return &clone
}

// PathOf returns the path of an artifact relative to the base directory.
func (r *Repository) PathOf(c Coordinates) string {
	return r.layout().PathOf(c)
}

// FileOf returns the absolute file path of an artifact in this repository.
func (r *Repository) FileOf(c Coordinates) string {
	return filepath.Join(r.Basedir, filepath.FromSlash(r.PathOf(c)))
}

// MetadataFile returns the file path of a repository metadata file.
func (r *Repository) MetadataFile(groupID, artifactID, version, name string) string {
	return filepath.Join(r.Basedir, filepath.FromSlash(r.layout().MetadataPath(groupID, artifactID, version, name)))
}

func (r *Repository) layout() Layout {
	if r.Layout == nil {
		return DefaultLayout{}
	}
	return r.Layout
}

func (r *Repository) String() string {
	return fmt.Sprintf("%s (%s)", r.ID, r.Basedir)
}
