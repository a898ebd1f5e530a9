package reactor

import (
	"fmt"
	"path/filepath"

	"github.com/dyluth/repostage/pkg/maven"
)

// Link builds the project graph. base is the directory relative paths are resolved
// against. A parent that is not part of the manifest becomes an external project
// without descriptor file, which is where the current build ends.
func (m *Manifest) Link(base string, source *maven.Repository, factory *maven.Factory) (*Reactor, error) {
	if factory == nil {
		factory = maven.NewFactory()
	}

	byKey := make(map[string]*maven.Project, len(m.Projects))
	projects := make([]*maven.Project, 0, len(m.Projects))

	for _, spec := range m.Projects {
		p := spec.project(base, factory)
		byKey[p.VersionlessKey()] = p
		projects = append(projects, p)
	}

	for i, spec := range m.Projects {
		p := projects[i]

		if ref := spec.Parent; ref != nil {
			parent, ok := byKey[maven.VersionlessKey(ref.GroupID, ref.ArtifactID)]
			if !ok || parent.Version != ref.Version {
				parent = &maven.Project{
					GroupID:    ref.GroupID,
					ArtifactID: ref.ArtifactID,
					Version:    ref.Version,
					Packaging:  maven.PackagingPOM,
				}
			}
			p.Parent = parent
		}

		for _, d := range spec.Dependencies {
			a := factory.CreateArtifactWithClassifier(d.GroupID, d.ArtifactID, d.Version, d.Type, d.Classifier)
			a.File = resolve(base, d.File)
			if a.File == "" && source != nil {
				a.File = source.FileOf(a.Coordinates)
			}
			p.Artifacts = append(p.Artifacts, a)
		}
	}

	for _, p := range projects {
		if err := checkCycle(p); err != nil {
			return nil, err
		}
	}

	r := &Reactor{projects: projects, root: projects[0]}
	if m.Root != "" {
		r.root = byKey[m.Root]
	}
	return r, nil
}

func (spec ProjectSpec) project(base string, factory *maven.Factory) *maven.Project {
	packaging := spec.Packaging
	if packaging == "" {
		packaging = "jar"
	}

	p := &maven.Project{
		GroupID:    spec.GroupID,
		ArtifactID: spec.ArtifactID,
		Version:    spec.Version,
		Packaging:  packaging,
		File:       resolve(base, spec.POM),
		Artifact:   factory.CreateArtifact(spec.GroupID, spec.ArtifactID, spec.Version, packaging),
	}
	p.Artifact.File = resolve(base, spec.File)

	for _, a := range spec.Attached {
		attached := factory.CreateArtifactWithClassifier(spec.GroupID, spec.ArtifactID, spec.Version, a.Type, a.Classifier)
		attached.File = resolve(base, a.File)
		p.Attached = append(p.Attached, attached)
	}
	return p
}

func checkCycle(p *maven.Project) error {
	seen := map[*maven.Project]bool{}
	for cur := p; cur != nil; cur = cur.Parent {
		if seen[cur] {
			return fmt.Errorf("parent cycle detected at project '%s'", cur)
		}
		seen[cur] = true
	}
	return nil
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
