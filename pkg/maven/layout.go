package maven

import (
	"path"
	"strings"
)

// Layout maps artifact coordinates to a slash-separated path relative to a repository
// base directory.
type Layout interface {
	// ID names the layout, e.g. "default".
	ID() string

	// PathOf returns the relative path of the artifact file.
	PathOf(c Coordinates) string

	// MetadataPath returns the relative path of a repository metadata file. An empty
	// version addresses the artifact-level file.
	MetadataPath(groupID, artifactID, version, name string) string
}

// DefaultLayout is the standard group/artifact/baseVersion/artifact-version[-classifier].ext layout.
type DefaultLayout struct{}

// ID returns "default".
func (DefaultLayout) ID() string {
	return "default"
}

// PathOf returns the relative path of the artifact file.
func (DefaultLayout) PathOf(c Coordinates) string {
	var file strings.Builder
	file.WriteString(c.ArtifactID)
	file.WriteByte('-')
	file.WriteString(c.Version)
	if c.Classifier != "" {
		file.WriteByte('-')
		file.WriteString(c.Classifier)
	}
	if ext := HandlerFor(c.Type).Extension; ext != "" {
		file.WriteByte('.')
		file.WriteString(ext)
	}
	return path.Join(groupPath(c.GroupID), c.ArtifactID, c.BaseVersion(), file.String())
}

// MetadataPath returns the relative path of a repository metadata file.
func (DefaultLayout) MetadataPath(groupID, artifactID, version, name string) string {
	if version == "" {
		return path.Join(groupPath(groupID), artifactID, name)
	}
	return path.Join(groupPath(groupID), artifactID, BaseVersion(version), name)
}

func groupPath(groupID string) string {
	return strings.ReplaceAll(groupID, ".", "/")
}
