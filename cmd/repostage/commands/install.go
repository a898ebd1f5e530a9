package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dyluth/repostage/internal/config"
	"github.com/dyluth/repostage/internal/printer"
	"github.com/dyluth/repostage/internal/reactor"
	"github.com/dyluth/repostage/internal/stage"
	"github.com/dyluth/repostage/pkg/maven"
	"github.com/spf13/cobra"
)

var (
	installReactor           string
	installLocalRepository   string
	installStagingRepository string
	installSkip              bool
	installReportPath        string
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Stage the build outputs and their dependencies",
	Long: `Install the project artifacts of the build into the staging repository.

Staged are:
  • the root project's POM, main artifact and attached artifacts
  • its parent POMs; parents outside the build are copied from the local repository
  • its dependencies: modules of the build are installed like the root project,
    everything else is copied from the local repository with its POM and parents

Examples:
  # Stage into target/it-repo using repostage.yml
  repostage install --staging-repository target/it-repo

  # Skip staging for this invocation
  repostage install --skip`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVarP(&installReactor, "reactor", "r", "", "Reactor manifest exported by the build (overrides config)")
	installCmd.Flags().StringVar(&installLocalRepository, "local-repository", "", "Local repository to read dependencies from (overrides config)")
	installCmd.Flags().StringVarP(&installStagingRepository, "staging-repository", "s", "", "Staging repository directory (overrides config)")
	installCmd.Flags().BoolVar(&installSkip, "skip", false, "Skip the installation")
	installCmd.Flags().StringVar(&installReportPath, "report", "", "Write a JSON report of the run to this file")
	rootCmd.AddCommand(installCmd)
}

// installOverrides collects the flags that override the configuration file.
func installOverrides() *config.Config {
	return &config.Config{
		Reactor:           installReactor,
		LocalRepository:   installLocalRepository,
		StagingRepository: installStagingRepository,
		Skip:              installSkip,
	}
}

// resolveConfig reads the stored configuration with the command-line overrides applied.
func resolveConfig(store config.Store) (*config.Config, error) {
	return store.Read(installOverrides())
}

func runInstall(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(config.NewFileStore(configPath))
	if err != nil {
		return printer.Error(
			"invalid configuration",
			err.Error(),
			[]string{fmt.Sprintf("Create a configuration:\n  repostage init\nor fix %s", configPath)},
		)
	}

	report, err := install(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	if report.Skipped {
		printer.Info("Skipping artifact installation per configuration.\n")
		return nil
	}

	printer.Success("Staged into %s\n", report.Repository)
	printer.Printf("  installed: %d\n", len(report.Installed))
	printer.Printf("  copied:    %d\n", len(report.Staged))

	if installReportPath != "" {
		if err := writeReport(installReportPath, report); err != nil {
			return err
		}
	}
	return nil
}

// install runs the stager for cfg. The reactor manifest is only read when the run is
// not skipped.
func install(ctx context.Context, cfg *config.Config) (*stage.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	source := cfg.SourceRepository()
	factory := maven.NewFactory()

	stager, err := stage.New(stage.Options{
		Installer:      maven.NewInstaller(),
		Factory:        factory,
		Source:         source,
		Logger:         logger,
		MaxParentDepth: *cfg.MaxParentDepth,
		Skip:           cfg.Skip,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create stager: %w", err)
	}

	req := stage.Request{StagingPath: cfg.StagingRepository}
	if !cfg.Skip {
		r, err := reactor.Load(cfg.Reactor, source, factory)
		if err != nil {
			return nil, printer.ErrorWithContext(
				"failed to load reactor manifest",
				err.Error(),
				map[string]string{"manifest": cfg.Reactor},
				[]string{"Export the reactor manifest from the build, or pass --reactor"},
			)
		}
		req.Project = r.Root()
		req.Siblings = r.Projects()
	}

	report, err := stager.Run(ctx, req)
	if err != nil {
		suggestion := "Check the repository paths and permissions"
		if stage.IsArtifactFileError(err) {
			suggestion = "Build the project (package phase) before staging it"
		}
		return nil, printer.ErrorWithContext(
			"artifact installation failed",
			err.Error(),
			map[string]string{
				"local repository":   source.Basedir,
				"staging repository": cfg.StagingRepository,
			},
			[]string{suggestion},
		)
	}
	return report, nil
}

func writeReport(path string, report *stage.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
