package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func boolPtr(b bool) *bool { return &b }

func TestLoad_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "repostage.yml")

	validConfig := `version: "1.0"
local_repository: /home/ci/.m2/repository
staging_repository: target/it-repo
repository_id: mirror
snapshots:
  update_policy: always
releases:
  enabled: false
  checksum_policy: fail
reactor: build/reactor.yml
max_parent_depth: 10
`
	require.NoError(t, os.WriteFile(configPath, []byte(validConfig), 0644))

	config, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "1.0", config.Version)
	assert.Equal(t, "/home/ci/.m2/repository", config.LocalRepository)
	assert.Equal(t, "target/it-repo", config.StagingRepository)
	assert.Equal(t, "build/reactor.yml", config.Reactor)
	assert.Equal(t, 10, *config.MaxParentDepth)
	assert.False(t, config.Skip)

	repo := config.SourceRepository()
	assert.Equal(t, "mirror", repo.ID)
	assert.Equal(t, "/home/ci/.m2/repository", repo.Basedir)
	assert.Equal(t, "always", repo.Snapshots.UpdatePolicy)
	assert.True(t, repo.Snapshots.Enabled)
	assert.False(t, repo.Releases.Enabled)
	assert.Equal(t, "fail", repo.Releases.ChecksumPolicy)
	assert.Equal(t, "daily", repo.Releases.UpdatePolicy)
}

func TestLoad_Defaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "repostage.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(`version: "1.0"`), 0644))

	config, err := Load(configPath)
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".m2", "repository"), config.LocalRepository)
	assert.Equal(t, "local", config.RepositoryID)
	assert.Equal(t, "reactor.yml", config.Reactor)
	assert.Equal(t, DefaultMaxParentDepth, *config.MaxParentDepth)
	assert.Empty(t, config.StagingRepository)
}

func TestLoad_FileNotFound(t *testing.T) {
	config, err := Load("/nonexistent/repostage.yml")
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "repostage.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("version: [\n"), 0644))

	config, err := Load(configPath)
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{"unsupported version", Config{Version: "2.0"}, "unsupported version: 2.0"},
		{"zero depth", Config{Version: "1.0", LocalRepository: "/r", MaxParentDepth: intPtr(0)}, "max_parent_depth must be >= 1"},
		{"bad snapshot policy", Config{Version: "1.0", LocalRepository: "/r", Snapshots: &PolicyConfig{UpdatePolicy: "hourly"}}, "snapshots: invalid update policy"},
		{"bad checksum policy", Config{Version: "1.0", LocalRepository: "/r", Releases: &PolicyConfig{ChecksumPolicy: "strict"}}, "releases: invalid checksum policy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMerge(t *testing.T) {
	base := &Config{
		Version:           "1.0",
		LocalRepository:   "/repo",
		StagingRepository: "target/it-repo",
		Skip:              true,
	}

	base.Merge(&Config{
		StagingRepository: "/tmp/other",
		MaxParentDepth:    intPtr(3),
		Snapshots:         &PolicyConfig{Enabled: boolPtr(false)},
	})

	assert.Equal(t, "/repo", base.LocalRepository)
	assert.Equal(t, "/tmp/other", base.StagingRepository)
	assert.Equal(t, 3, *base.MaxParentDepth)
	assert.True(t, base.Skip, "skip stays set")
	assert.False(t, *base.Snapshots.Enabled)

	base.Merge(nil)
	assert.Equal(t, "/tmp/other", base.StagingRepository)
}

func TestFileStore_ReadMissingFileUsesDefaults(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "repostage.yml"))

	config, err := store.Read(&Config{LocalRepository: "/repo", Skip: true})
	require.NoError(t, err)
	assert.Equal(t, "1.0", config.Version)
	assert.Equal(t, "/repo", config.LocalRepository)
	assert.True(t, config.Skip)
}

func TestFileStore_ReadMergesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repostage.yml")
	require.NoError(t, os.WriteFile(path, []byte(`version: "1.0"
local_repository: /repo
staging_repository: it-repo
max_parent_depth: 7
`), 0644))
	store := NewFileStore(path)

	config, err := store.Read(&Config{StagingRepository: "override"})
	require.NoError(t, err)
	assert.Equal(t, "/repo", config.LocalRepository)
	assert.Equal(t, "override", config.StagingRepository)
	assert.Equal(t, 7, *config.MaxParentDepth)
}

func TestFileStore_ReadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repostage.yml")
	require.NoError(t, os.WriteFile(path, []byte(`version: "9"`), 0644))

	_, err := NewFileStore(path).Read(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
