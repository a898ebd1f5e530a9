package maven

import "fmt"

// PackagingPOM is the packaging of aggregator and parent projects.
const PackagingPOM = "pom"

// Project is one module of a build. Projects are supplied fully resolved by the build
// and are never modified by repostage.
type Project struct {
	GroupID    string
	ArtifactID string
	Version    string
	Packaging  string      // "pom", "jar", ...; empty means "jar"
	File       string      // Descriptor (pom.xml) path, empty when the project is not part of the current build
	Artifact   *Artifact   // Main artifact; its File is empty when nothing was built
	Parent     *Project    // Parent project, nil at the top of the chain
	Attached   []*Artifact // Secondary artifacts (sources, javadoc, tests, ...)
	Artifacts  []*Artifact // Resolved dependency closure
}

// VersionlessKey returns group:artifact.
func (p *Project) VersionlessKey() string {
	return VersionlessKey(p.GroupID, p.ArtifactID)
}

// IsPOM reports whether the project has "pom" packaging.
func (p *Project) IsPOM() bool {
	return p.Packaging == PackagingPOM
}

// IsLocal reports whether the project's descriptor is available on disk, i.e. the
// project belongs to the current build.
func (p *Project) IsLocal() bool {
	return p.File != ""
}

func (p *Project) String() string {
	if p == nil {
		return "<nil project>"
	}
	return fmt.Sprintf("%s:%s:%s", p.GroupID, p.ArtifactID, p.Version)
}
