package stage

import (
	"errors"
	"fmt"
)

// ErrParentDepth is returned when a parent chain is longer than the configured limit.
var ErrParentDepth = errors.New("parent chain exceeds maximum depth")

// ArtifactFileError reports an artifact whose backing file is missing or is not a
// regular file, i.e. the build output was never produced.
type ArtifactFileError struct {
	Artifact string // Identity of the offending artifact
	File     string // Path that was expected to hold the artifact, may be empty
}

func (e *ArtifactFileError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("artifact %s has no associated file", e.Artifact)
	}
	return fmt.Sprintf("artifact %s is not fully assembled: %s", e.Artifact, e.File)
}

// IsArtifactFileError returns true if err (or anything it wraps) is an ArtifactFileError.
func IsArtifactFileError(err error) bool {
	var fileErr *ArtifactFileError
	return errors.As(err, &fileErr)
}
