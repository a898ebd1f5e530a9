package maven

import "fmt"

// Artifact is a uniquely identified build output, optionally backed by a file, plus
// the metadata records that travel with it into a repository.
type Artifact struct {
	Coordinates
	File     string     // Path of the backing file, empty when the artifact has none
	Metadata []Metadata // Records stored next to the artifact when it is written
}

// AddMetadata attaches a metadata record, replacing any record with the same key.
func (a *Artifact) AddMetadata(m Metadata) {
	for i, existing := range a.Metadata {
		if existing.Key() == m.Key() {
			a.Metadata[i] = m
			return
		}
	}
	a.Metadata = append(a.Metadata, m)
}

func (a *Artifact) String() string {
	if a == nil {
		return "<nil artifact>"
	}
	return a.ID()
}

// Metadata is a record written into a repository alongside an artifact.
type Metadata interface {
	// Key identifies the record; an artifact holds at most one record per key.
	Key() string

	// StoreIn writes the record into repo.
	StoreIn(repo *Repository) error
}

// ProjectMetadata carries the POM of an artifact so it lands in the repository
// together with the artifact itself.
type ProjectMetadata struct {
	Artifact *Artifact
	File     string // Path of the POM file
}

// NewProjectMetadata creates POM metadata for artifact backed by pomFile.
func NewProjectMetadata(artifact *Artifact, pomFile string) *ProjectMetadata {
	return &ProjectMetadata{Artifact: artifact, File: pomFile}
}

// Key returns "project" followed by the versionless key of the artifact.
func (m *ProjectMetadata) Key() string {
	return "project " + m.Artifact.VersionlessKey()
}

// Coordinates returns the coordinates of the POM itself.
func (m *ProjectMetadata) Coordinates() Coordinates {
	return Coordinates{
		GroupID:    m.Artifact.GroupID,
		ArtifactID: m.Artifact.ArtifactID,
		Version:    m.Artifact.Version,
		Type:       "pom",
	}
}

// StoreIn copies the POM to the path of the artifact's POM in repo.
func (m *ProjectMetadata) StoreIn(repo *Repository) error {
	dest := repo.FileOf(m.Coordinates())
	if err := CopyFile(m.File, dest); err != nil {
		return fmt.Errorf("failed to store POM metadata for %s: %w", m.Artifact, err)
	}
	return nil
}
