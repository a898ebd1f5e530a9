package printer

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	oldOut, oldErr, oldNoColor := Stdout, Stderr, color.NoColor
	Stdout, Stderr, color.NoColor = out, errOut, true
	t.Cleanup(func() {
		Stdout, Stderr, color.NoColor = oldOut, oldErr, oldNoColor
	})
	return out, errOut
}

func TestSuccess_AddsCheckmarkOnce(t *testing.T) {
	out, _ := capture(t)

	Success("staged %d artifacts\n", 3)
	Success("✓ already marked\n")

	assert.Equal(t, "✓ staged 3 artifacts\n✓ already marked\n", out.String())
}

func TestWarning_AddsPrefix(t *testing.T) {
	out, _ := capture(t)
	Warning("careful\n")
	assert.Equal(t, "⚠️  careful\n", out.String())
}

func TestError_SingleSuggestion(t *testing.T) {
	_, errOut := capture(t)

	err := Error("staging failed", "Artifact is missing.", []string{"Run the build first"})

	assert.EqualError(t, err, "staging failed")
	assert.Equal(t, "staging failed\n\nArtifact is missing.\n\nRun the build first\n", errOut.String())
}

func TestErrorWithContext_MultipleSuggestions(t *testing.T) {
	_, errOut := capture(t)

	err := ErrorWithContext("staging failed", "", map[string]string{"artifact": "g:a:jar:1"}, []string{"one", "two"})

	assert.EqualError(t, err, "staging failed")
	assert.Contains(t, errOut.String(), "  artifact: g:a:jar:1\n")
	assert.Contains(t, errOut.String(), "Either:\n  1. one\n  2. two\n")
}

func TestIsReported(t *testing.T) {
	capture(t)

	err := Error("staging failed", "", nil)
	assert.True(t, IsReported(err))
	assert.True(t, IsReported(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsReported(errors.New("plain")))
	assert.False(t, IsReported(nil))
}
