package maven

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// POM holds the parts of a project descriptor needed to walk parent chains.
type POM struct {
	XMLName    xml.Name   `xml:"project"`
	GroupID    string     `xml:"groupId"`
	ArtifactID string     `xml:"artifactId"`
	Version    string     `xml:"version"`
	Packaging  string     `xml:"packaging"`
	Parent     *ParentRef `xml:"parent"`
}

// ParentRef is the <parent> declaration of a POM.
type ParentRef struct {
	GroupID      string `xml:"groupId"`
	ArtifactID   string `xml:"artifactId"`
	Version      string `xml:"version"`
	RelativePath string `xml:"relativePath"`
}

func (p *ParentRef) String() string {
	return fmt.Sprintf("%s:%s:%s", p.GroupID, p.ArtifactID, p.Version)
}

// MalformedPOMError reports a descriptor that could not be parsed.
type MalformedPOMError struct {
	Path string
	Err  error
}

func (e *MalformedPOMError) Error() string {
	return fmt.Sprintf("malformed POM %s: %v", e.Path, e.Err)
}

func (e *MalformedPOMError) Unwrap() error {
	return e.Err
}

// ReadPOM parses the descriptor at path.
// Parse failures are returned as *MalformedPOMError; I/O failures are wrapped as is.
func ReadPOM(path string) (*POM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read POM: %w", err)
	}
	defer f.Close()

	pom, err := DecodePOM(f)
	if err != nil {
		return nil, &MalformedPOMError{Path: path, Err: err}
	}
	return pom, nil
}

// DecodePOM parses a descriptor from r. Group id and version are inherited from the
// parent declaration when omitted. Declared encodings other than UTF-8 (ISO-8859-1,
// windows-1252, ...) are transcoded; a leading UTF-8 byte order mark is skipped.
func DecodePOM(r io.Reader) (*POM, error) {
	br := bufio.NewReader(r)
	if err := discardBOM(br); err != nil {
		return nil, err
	}

	dec := xml.NewDecoder(br)
	dec.CharsetReader = charset.NewReaderLabel

	var pom POM
	if err := dec.Decode(&pom); err != nil {
		return nil, err
	}

	pom.GroupID = strings.TrimSpace(pom.GroupID)
	pom.ArtifactID = strings.TrimSpace(pom.ArtifactID)
	pom.Version = strings.TrimSpace(pom.Version)
	pom.Packaging = strings.TrimSpace(pom.Packaging)

	if p := pom.Parent; p != nil {
		p.GroupID = strings.TrimSpace(p.GroupID)
		p.ArtifactID = strings.TrimSpace(p.ArtifactID)
		p.Version = strings.TrimSpace(p.Version)
		p.RelativePath = strings.TrimSpace(p.RelativePath)
		if p.GroupID == "" || p.ArtifactID == "" || p.Version == "" {
			return nil, fmt.Errorf("parent declaration requires groupId, artifactId and version")
		}
		if pom.GroupID == "" {
			pom.GroupID = p.GroupID
		}
		if pom.Version == "" {
			pom.Version = p.Version
		}
	}

	if pom.ArtifactID == "" {
		return nil, fmt.Errorf("artifactId is required")
	}
	for _, segment := range []string{pom.GroupID, pom.ArtifactID, pom.Version} {
		if err := ValidateSegment(segment); err != nil {
			return nil, err
		}
	}
	if p := pom.Parent; p != nil {
		for _, segment := range []string{p.GroupID, p.ArtifactID, p.Version} {
			if err := ValidateSegment(segment); err != nil {
				return nil, fmt.Errorf("parent %s: %w", p, err)
			}
		}
	}
	if pom.Packaging == "" {
		pom.Packaging = "jar"
	}

	return &pom, nil
}

func discardBOM(r *bufio.Reader) error {
	peek, err := r.Peek(len(utf8BOM))
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if bytes.Equal(peek, utf8BOM) {
		_, _ = r.Discard(len(utf8BOM))
	}
	return nil
}
