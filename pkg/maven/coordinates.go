package maven

import (
	"fmt"
	"regexp"
	"strings"
)

// SnapshotVersion is the version suffix marking a development version.
const SnapshotVersion = "SNAPSHOT"

// timestampedVersion matches deployed snapshot versions such as 1.0-20240101.120000-3.
var timestampedVersion = regexp.MustCompile(`^(.*)-(\d{8}\.\d{6})-(\d+)$`)

// Coordinates identify an artifact inside a repository.
type Coordinates struct {
	GroupID    string `json:"group_id" yaml:"group_id"`                         // Dotted group, e.g. "com.acme"
	ArtifactID string `json:"artifact_id" yaml:"artifact_id"`                   // Artifact name, e.g. "app"
	Version    string `json:"version" yaml:"version"`                           // Version as resolved, may be a timestamped snapshot
	Classifier string `json:"classifier,omitempty" yaml:"classifier,omitempty"` // Optional classifier, e.g. "sources"
	Type       string `json:"type" yaml:"type"`                                 // Artifact type, e.g. "jar" or "pom"
}

// ID returns the deduplication identity group:artifact:type[:classifier]:baseVersion.
func (c Coordinates) ID() string {
	var b strings.Builder
	b.WriteString(c.GroupID)
	b.WriteByte(':')
	b.WriteString(c.ArtifactID)
	b.WriteByte(':')
	b.WriteString(c.Type)
	if c.Classifier != "" {
		b.WriteByte(':')
		b.WriteString(c.Classifier)
	}
	b.WriteByte(':')
	b.WriteString(c.BaseVersion())
	return b.String()
}

// VersionlessKey returns group:artifact.
func (c Coordinates) VersionlessKey() string {
	return VersionlessKey(c.GroupID, c.ArtifactID)
}

// VersionlessKey joins a group and artifact id the same way Coordinates.VersionlessKey does.
func VersionlessKey(groupID, artifactID string) string {
	return groupID + ":" + artifactID
}

// BaseVersion normalises a timestamped snapshot version to its -SNAPSHOT form.
// Any other version is returned unchanged.
func (c Coordinates) BaseVersion() string {
	return BaseVersion(c.Version)
}

// IsSnapshot reports whether the coordinates denote a snapshot version.
func (c Coordinates) IsSnapshot() bool {
	return IsSnapshot(c.Version)
}

// BaseVersion normalises a timestamped snapshot version, e.g. 1.0-20240101.120000-3
// becomes 1.0-SNAPSHOT.
func BaseVersion(version string) string {
	if m := timestampedVersion.FindStringSubmatch(version); m != nil {
		return m[1] + "-" + SnapshotVersion
	}
	return version
}

// IsSnapshot reports whether version is a -SNAPSHOT or timestamped snapshot version.
func IsSnapshot(version string) bool {
	return strings.HasSuffix(version, SnapshotVersion) || timestampedVersion.MatchString(version)
}

// ValidateSegment rejects a coordinate value that would escape its directory in the
// repository layout: path separators, "." and "..". Empty values pass.
func ValidateSegment(value string) error {
	if value == "." || strings.Contains(value, "..") || strings.ContainsAny(value, `/\`) {
		return fmt.Errorf("invalid coordinate %q: must not contain path separators or \"..\"", value)
	}
	return nil
}

// ParseCoordinates parses group:artifact:version[:type[:classifier]].
// The type defaults to "jar".
func ParseCoordinates(s string) (Coordinates, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 || len(parts) > 5 {
		return Coordinates{}, fmt.Errorf("invalid coordinates %q: expected group:artifact:version[:type[:classifier]]", s)
	}
	for i, p := range parts {
		if p == "" && i < 3 {
			return Coordinates{}, fmt.Errorf("invalid coordinates %q: empty segment", s)
		}
	}

	c := Coordinates{
		GroupID:    parts[0],
		ArtifactID: parts[1],
		Version:    parts[2],
		Type:       "jar",
	}
	if len(parts) > 3 && parts[3] != "" {
		c.Type = parts[3]
	}
	if len(parts) > 4 {
		c.Classifier = parts[4]
	}
	for _, p := range parts {
		if err := ValidateSegment(p); err != nil {
			return Coordinates{}, err
		}
	}
	return c, nil
}

func (c Coordinates) String() string {
	return c.ID()
}
