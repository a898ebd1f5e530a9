package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dyluth/repostage/internal/config"
	"gopkg.in/yaml.v3"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name      string
		force     bool
		setupFunc func(string)
		wantErr   bool
	}{
		{
			name:      "fresh initialization",
			force:     false,
			setupFunc: func(dir string) {},
			wantErr:   false,
		},
		{
			name:  "force initialization overwrites existing files",
			force: true,
			setupFunc: func(dir string) {
				os.WriteFile(filepath.Join(dir, config.DefaultFile), []byte("old content"), 0644)
			},
			wantErr: false,
		},
		{
			name:  "existing config without force",
			force: false,
			setupFunc: func(dir string) {
				os.WriteFile(filepath.Join(dir, config.DefaultFile), []byte("old content"), 0644)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			tt.setupFunc(tmpDir)

			err := Initialize(tmpDir, tt.force)

			if (err != nil) != tt.wantErr {
				t.Errorf("Initialize() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}

			for _, name := range []string{config.DefaultFile, ExampleReactorFile} {
				if _, err := os.Stat(filepath.Join(tmpDir, name)); err != nil {
					t.Errorf("expected %s to exist: %v", name, err)
				}
			}

			cfg, err := config.Load(filepath.Join(tmpDir, config.DefaultFile))
			if err != nil {
				t.Fatalf("created config does not load: %v", err)
			}
			if cfg.StagingRepository != "target/it-repo" {
				t.Errorf("staging_repository = %q, want target/it-repo", cfg.StagingRepository)
			}
			if cfg.Skip {
				t.Errorf("template must not skip staging")
			}
		})
	}
}

func TestTemplates_AreValidYAML(t *testing.T) {
	files, err := getTemplateFiles(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 template files, got %d", len(files))
	}

	for _, f := range files {
		var data map[string]interface{}
		if err := yaml.Unmarshal(f.Content, &data); err != nil {
			t.Errorf("%s is not valid YAML: %v", f.Path, err)
		}
		if data["version"] != "1.0" {
			t.Errorf("%s: version = %v, want 1.0", f.Path, data["version"])
		}
	}
}
