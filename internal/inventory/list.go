// Package inventory lists the artifacts present in a staged repository.
package inventory

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// OutputFormat specifies how to format the listing.
type OutputFormat string

const (
	// OutputFormatDefault prints one aligned line per file
	OutputFormatDefault OutputFormat = "default"

	// OutputFormatJSONL outputs entries as line-delimited JSON
	OutputFormatJSONL OutputFormat = "jsonl"
)

// Entry is one file of a repository, addressed by the default layout.
type Entry struct {
	GroupID    string `json:"group_id"`
	ArtifactID string `json:"artifact_id"`
	Version    string `json:"version"`
	File       string `json:"file"` // File name inside the version directory
	Size       int64  `json:"size"`
}

// Key returns group:artifact:version.
func (e Entry) Key() string {
	return fmt.Sprintf("%s:%s:%s", e.GroupID, e.ArtifactID, e.Version)
}

// List walks the repository at basedir and returns its artifact files sorted by key
// and file name. Repository metadata files and files not deep enough to carry group,
// artifact and version are skipped.
func List(basedir string) ([]Entry, error) {
	var entries []Entry

	err := filepath.WalkDir(basedir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), "maven-metadata") {
			return nil
		}

		rel, err := filepath.Rel(basedir, path)
		if err != nil {
			return err
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if len(parts) < 4 {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		n := len(parts)
		entries = append(entries, Entry{
			GroupID:    strings.Join(parts[:n-3], "."),
			ArtifactID: parts[n-3],
			Version:    parts[n-2],
			File:       parts[n-1],
			Size:       info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list repository %s: %w", basedir, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Key() != entries[j].Key() {
			return entries[i].Key() < entries[j].Key()
		}
		return entries[i].File < entries[j].File
	})
	return entries, nil
}
