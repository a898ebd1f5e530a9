package maven

// Factory creates artifacts from coordinates, applying the classifier implied by the
// artifact type when none is given.
type Factory struct{}

// NewFactory creates a new artifact factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateProjectArtifact creates the POM artifact of a project.
func (f *Factory) CreateProjectArtifact(groupID, artifactID, version string) *Artifact {
	return f.CreateArtifactWithClassifier(groupID, artifactID, version, "pom", "")
}

// CreateArtifact creates an artifact without classifier.
func (f *Factory) CreateArtifact(groupID, artifactID, version, artifactType string) *Artifact {
	return f.CreateArtifactWithClassifier(groupID, artifactID, version, artifactType, "")
}

// CreateArtifactWithClassifier creates an artifact with an explicit classifier.
func (f *Factory) CreateArtifactWithClassifier(groupID, artifactID, version, artifactType, classifier string) *Artifact {
	if artifactType == "" {
		artifactType = "jar"
	}
	if classifier == "" {
		classifier = HandlerFor(artifactType).Classifier
	}
	return &Artifact{
		Coordinates: Coordinates{
			GroupID:    groupID,
			ArtifactID: artifactID,
			Version:    version,
			Classifier: classifier,
			Type:       artifactType,
		},
	}
}
