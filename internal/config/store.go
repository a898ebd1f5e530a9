package config

import (
	"errors"
	"fmt"
	"io/fs"
)

// Store provides the configuration of a run.
type Store interface {
	// Read returns the stored configuration with merge overlaid and defaults applied.
	Read(merge *Config) (*Config, error)
}

// FileStore keeps the configuration in a YAML file. A missing file reads as the
// default configuration.
type FileStore struct {
	Path string
}

// NewFileStore creates a store backed by path
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Read loads the file, overlays merge and validates the result.
func (s *FileStore) Read(merge *Config) (*Config, error) {
	config, err := parse(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		config, err = &Config{Version: "1.0"}, nil
	}
	if err != nil {
		return nil, err
	}

	config.Merge(merge)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}
