package reactor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dyluth/repostage/pkg/maven"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const acmeManifest = `version: "1.0"
root: com.acme:app
projects:
  - group_id: com.acme
    artifact_id: parent
    version: "1.0"
    packaging: pom
    pom: pom.xml
    parent:
      group_id: com.acme
      artifact_id: super
      version: "1.0"
  - group_id: com.acme
    artifact_id: app
    version: "1.0"
    pom: app/pom.xml
    file: app/target/app-1.0.jar
    parent:
      group_id: com.acme
      artifact_id: parent
      version: "1.0"
    attached:
      - type: java-source
        file: app/target/app-1.0-sources.jar
    dependencies:
      - group_id: org.other
        artifact_id: util
        version: "3.1"
      - group_id: org.other
        artifact_id: tools
        version: "1.0"
        classifier: linux
        file: /opt/tools-1.0-linux.jar
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reactor.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_AcmeManifest(t *testing.T) {
	path := writeManifest(t, acmeManifest)
	base := filepath.Dir(path)
	source := maven.NewRepository("local", "/repo")

	r, err := Load(path, source, nil)
	require.NoError(t, err)
	require.Len(t, r.Projects(), 2)

	app := r.Root()
	require.NotNil(t, app)
	assert.Equal(t, "com.acme:app:1.0", app.String())
	assert.Equal(t, "jar", app.Packaging)
	assert.Equal(t, filepath.Join(base, "app", "pom.xml"), app.File)
	assert.Equal(t, filepath.Join(base, "app", "target", "app-1.0.jar"), app.Artifact.File)
	assert.Equal(t, "com.acme:app:jar:1.0", app.Artifact.ID())

	require.Len(t, app.Attached, 1)
	assert.Equal(t, "sources", app.Attached[0].Classifier)

	parent := app.Parent
	require.NotNil(t, parent)
	assert.Same(t, r.Projects()[0], parent)
	assert.True(t, parent.IsLocal())
	assert.True(t, parent.IsPOM())

	super := parent.Parent
	require.NotNil(t, super)
	assert.False(t, super.IsLocal())
	assert.Equal(t, "com.acme:super:1.0", super.String())
	assert.Nil(t, super.Parent)

	require.Len(t, app.Artifacts, 2)
	assert.Equal(t, source.FileOf(app.Artifacts[0].Coordinates), app.Artifacts[0].File)
	assert.Equal(t, "jar", app.Artifacts[0].Type)
	assert.Equal(t, "/opt/tools-1.0-linux.jar", app.Artifacts[1].File)
	assert.Equal(t, "linux", app.Artifacts[1].Classifier)
}

func TestLoad_DefaultRootIsFirstProject(t *testing.T) {
	path := writeManifest(t, `version: "1.0"
projects:
  - group_id: g
    artifact_id: a
    version: "1"
    pom: pom.xml
`)
	r, err := Load(path, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "g:a:1", r.Root().String())
}

func TestLoad_ParentVersionMismatchIsExternal(t *testing.T) {
	path := writeManifest(t, `version: "1.0"
projects:
  - group_id: g
    artifact_id: parent
    version: "2"
    packaging: pom
    pom: pom.xml
  - group_id: g
    artifact_id: child
    version: "1"
    pom: child/pom.xml
    parent: {group_id: g, artifact_id: parent, version: "1"}
`)
	r, err := Load(path, nil, nil)
	require.NoError(t, err)

	child := r.Projects()[1]
	require.NotNil(t, child.Parent)
	assert.NotSame(t, r.Projects()[0], child.Parent)
	assert.False(t, child.Parent.IsLocal())
}

func TestLoad_ParentCycle(t *testing.T) {
	path := writeManifest(t, `version: "1.0"
projects:
  - group_id: g
    artifact_id: a
    version: "1"
    pom: a/pom.xml
    parent: {group_id: g, artifact_id: b, version: "1"}
  - group_id: g
    artifact_id: b
    version: "1"
    pom: b/pom.xml
    parent: {group_id: g, artifact_id: a, version: "1"}
`)
	_, err := Load(path, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parent cycle detected")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		want     string
	}{
		{"invalid yaml", "version: [", "failed to parse reactor manifest"},
		{"bad version", "version: \"2.0\"\nprojects: []\n", "unsupported version: 2.0"},
		{"no projects", "version: \"1.0\"\n", "no projects defined"},
		{"missing coordinates", "version: \"1.0\"\nprojects:\n  - group_id: g\n", "group_id, artifact_id and version are required"},
		{"duplicate", "version: \"1.0\"\nprojects:\n  - {group_id: g, artifact_id: a, version: \"1\"}\n  - {group_id: g, artifact_id: a, version: \"2\"}\n", "duplicate project 'g:a'"},
		{"unknown root", "version: \"1.0\"\nroot: g:zz\nprojects:\n  - {group_id: g, artifact_id: a, version: \"1\"}\n", "root project 'g:zz'"},
		{"incomplete parent", "version: \"1.0\"\nprojects:\n  - {group_id: g, artifact_id: a, version: \"1\", parent: {group_id: g}}\n", "parent requires"},
		{"incomplete dependency", "version: \"1.0\"\nprojects:\n  - {group_id: g, artifact_id: a, version: \"1\", dependencies: [{group_id: x}]}\n", "dependency requires"},
		{"traversal in project", "version: \"1.0\"\nprojects:\n  - {group_id: ../../etc, artifact_id: a, version: \"1\"}\n", "project 0: invalid coordinate"},
		{"separator in parent", "version: \"1.0\"\nprojects:\n  - {group_id: g, artifact_id: a, version: \"1\", parent: {group_id: g, artifact_id: p/q, version: \"1\"}}\n", "parent: invalid coordinate"},
		{"traversal in dependency", "version: \"1.0\"\nprojects:\n  - {group_id: g, artifact_id: a, version: \"1\", dependencies: [{group_id: x, artifact_id: y, version: \"..\"}]}\n", "dependency: invalid coordinate"},
		{"separator in classifier", "version: \"1.0\"\nprojects:\n  - {group_id: g, artifact_id: a, version: \"1\", attached: [{classifier: ../x}]}\n", "attached artifact: invalid coordinate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeManifest(t, tt.manifest), nil, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/reactor.yml", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read reactor manifest")
}
