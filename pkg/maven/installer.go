package maven

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"
)

// LocalMetadataFile is the repository metadata file maintained by installs into a
// local repository.
const LocalMetadataFile = "maven-metadata-local.xml"

// Installer writes a freshly built artifact into a repository.
type Installer interface {
	Install(file string, artifact *Artifact, repo *Repository) error
}

// DefaultInstaller copies the artifact file, stores its metadata and applies the local
// repository transform: the artifact-level metadata file records the installed version,
// and snapshot versions get a version-level metadata file flagged as a local copy.
type DefaultInstaller struct {
	Now func() time.Time // Clock used for lastUpdated, defaults to time.Now
}

// NewInstaller creates an installer using the wall clock.
func NewInstaller() *DefaultInstaller {
	return &DefaultInstaller{Now: time.Now}
}

// Install writes artifact (backed by file) into repo.
func (i *DefaultInstaller) Install(file string, artifact *Artifact, repo *Repository) error {
	dest := repo.FileOf(artifact.Coordinates)
	if err := CopyFile(file, dest); err != nil {
		return fmt.Errorf("failed to install %s: %w", artifact, err)
	}

	for _, m := range artifact.Metadata {
		if err := m.StoreIn(repo); err != nil {
			return err
		}
	}

	if err := i.updateMetadata(artifact, repo); err != nil {
		return fmt.Errorf("failed to update repository metadata for %s: %w", artifact, err)
	}
	return nil
}

// RepositoryMetadata is the content of maven-metadata-local.xml.
type RepositoryMetadata struct {
	XMLName    xml.Name   `xml:"metadata"`
	GroupID    string     `xml:"groupId"`
	ArtifactID string     `xml:"artifactId"`
	Version    string     `xml:"version,omitempty"`
	Versioning Versioning `xml:"versioning"`
}

// Versioning is the <versioning> block of repository metadata.
type Versioning struct {
	Release     string    `xml:"release,omitempty"`
	Snapshot    *Snapshot `xml:"snapshot,omitempty"`
	Versions    []string  `xml:"versions>version,omitempty"`
	LastUpdated string    `xml:"lastUpdated,omitempty"`
}

// Snapshot marks a snapshot version in version-level metadata.
type Snapshot struct {
	LocalCopy bool `xml:"localCopy"`
}

// ReadRepositoryMetadata parses a metadata file. A missing file yields nil, nil.
func ReadRepositoryMetadata(path string) (*RepositoryMetadata, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata %s: %w", path, err)
	}

	var md RepositoryMetadata
	if err := xml.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("failed to parse metadata %s: %w", path, err)
	}
	return &md, nil
}

func (i *DefaultInstaller) updateMetadata(artifact *Artifact, repo *Repository) error {
	now := time.Now
	if i.Now != nil {
		now = i.Now
	}
	stamp := now().UTC().Format("20060102150405")
	version := artifact.BaseVersion()

	path := repo.MetadataFile(artifact.GroupID, artifact.ArtifactID, "", LocalMetadataFile)
	md, err := ReadRepositoryMetadata(path)
	if err != nil {
		return err
	}
	if md == nil {
		md = &RepositoryMetadata{GroupID: artifact.GroupID, ArtifactID: artifact.ArtifactID}
	}
	if !slices.Contains(md.Versioning.Versions, version) {
		md.Versioning.Versions = append(md.Versioning.Versions, version)
	}
	if !IsSnapshot(version) {
		md.Versioning.Release = version
	}
	md.Versioning.LastUpdated = stamp
	if err := writeMetadata(path, md); err != nil {
		return err
	}

	if !artifact.IsSnapshot() {
		return nil
	}
	snapshot := &RepositoryMetadata{
		GroupID:    artifact.GroupID,
		ArtifactID: artifact.ArtifactID,
		Version:    version,
		Versioning: Versioning{
			Snapshot:    &Snapshot{LocalCopy: true},
			LastUpdated: stamp,
		},
	}
	return writeMetadata(repo.MetadataFile(artifact.GroupID, artifact.ArtifactID, version, LocalMetadataFile), snapshot)
}

func writeMetadata(path string, md *RepositoryMetadata) error {
	data, err := xml.MarshalIndent(md, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	data = append([]byte(xml.Header), data...)
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write metadata %s: %w", path, err)
	}
	return nil
}
