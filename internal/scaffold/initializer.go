package scaffold

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/repostage/internal/config"
	"github.com/dyluth/repostage/internal/printer"
	"gopkg.in/yaml.v3"
)

//go:embed templates/*
var templatesFS embed.FS

// ExampleReactorFile is the example manifest written next to the configuration.
const ExampleReactorFile = "reactor.example.yml"

// FileInfo represents a file to be created during initialization
type FileInfo struct {
	Path        string
	Content     []byte
	Permissions os.FileMode
}

// Initialize writes repostage.yml and an example reactor manifest into dir.
// If force is true, existing files are overwritten.
func Initialize(dir string, force bool) error {
	if !force {
		if err := CheckExisting(dir); err != nil {
			return err
		}
	}

	files, err := getTemplateFiles(dir)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := writeFiles(files); err != nil {
		return err
	}

	return validateCreatedFiles(dir)
}

// getTemplateFiles reads all template files
func getTemplateFiles(dir string) ([]FileInfo, error) {
	templates := []struct {
		name string
		path string
	}{
		{"templates/repostage.yml.tmpl", config.DefaultFile},
		{"templates/reactor.yml.tmpl", ExampleReactorFile},
	}

	files := make([]FileInfo, 0, len(templates))
	for _, tmpl := range templates {
		content, err := templatesFS.ReadFile(tmpl.name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s template: %w", tmpl.path, err)
		}
		files = append(files, FileInfo{
			Path:        filepath.Join(dir, tmpl.path),
			Content:     content,
			Permissions: 0644,
		})
	}
	return files, nil
}

// writeFiles writes all template files to disk
func writeFiles(files []FileInfo) error {
	for _, file := range files {
		if err := os.WriteFile(file.Path, file.Content, file.Permissions); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.Path, err)
		}
	}
	return nil
}

// validateCreatedFiles validates that created files are correct
func validateCreatedFiles(dir string) error {
	if _, err := config.Load(filepath.Join(dir, config.DefaultFile)); err != nil {
		return fmt.Errorf("created %s is invalid: %w", config.DefaultFile, err)
	}

	content, err := os.ReadFile(filepath.Join(dir, ExampleReactorFile))
	if err != nil {
		return fmt.Errorf("failed to read created %s: %w", ExampleReactorFile, err)
	}

	var yamlData interface{}
	if err := yaml.Unmarshal(content, &yamlData); err != nil {
		return fmt.Errorf("created %s is not valid YAML: %w", ExampleReactorFile, err)
	}

	return nil
}

// PrintSuccess prints the success message with created files
func PrintSuccess() {
	printer.Success("Initialized repostage\n")
	printer.Println("\nCreated:")
	printer.Printf("  ✓ %s\n", config.DefaultFile)
	printer.Printf("  ✓ %s\n", ExampleReactorFile)
	printer.Println("\nNext steps:")
	printer.Println("  1. Export the reactor manifest from your build (see reactor.example.yml)")
	printer.Println("  2. Point 'reactor' in repostage.yml at it")
	printer.Println("  3. Run 'repostage install' before the integration tests")
}
