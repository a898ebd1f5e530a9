package testutil

import "github.com/dyluth/repostage/internal/config"

// ConfigStoreStub is an in-memory config.Store holding a single configuration.
type ConfigStoreStub struct {
	Config *config.Config
}

// NewConfigStoreStub creates a stub holding cfg, or an empty version 1.0 config when nil.
func NewConfigStoreStub(cfg *config.Config) *ConfigStoreStub {
	if cfg == nil {
		cfg = &config.Config{Version: "1.0"}
	}
	return &ConfigStoreStub{Config: cfg}
}

// Read overlays merge onto the held configuration, validates it and returns it.
func (s *ConfigStoreStub) Read(merge *config.Config) (*config.Config, error) {
	s.Config.Merge(merge)
	if err := s.Config.Validate(); err != nil {
		return nil, err
	}
	return s.Config, nil
}
