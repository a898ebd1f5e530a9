package commands

import (
	"fmt"

	"github.com/dyluth/repostage/internal/config"
	"github.com/dyluth/repostage/internal/printer"
	"github.com/dyluth/repostage/pkg/maven"
	"github.com/spf13/cobra"
)

var pathAbsolute bool

var pathCmd = &cobra.Command{
	Use:   "path GROUP:ARTIFACT:VERSION[:TYPE[:CLASSIFIER]]",
	Short: "Print the repository path of an artifact",
	Long: `Print the path of an artifact in the default repository layout.

Examples:
  repostage path com.acme:app:1.0
  # com/acme/app/1.0/app-1.0.jar

  repostage path com.acme:app:1.0:test-jar --absolute
  # /home/me/.m2/repository/com/acme/app/1.0/app-1.0-tests.jar`,
	Args: cobra.ExactArgs(1),
	RunE: runPath,
}

func init() {
	pathCmd.Flags().BoolVarP(&pathAbsolute, "absolute", "a", false, "Print the path inside the local repository")
	rootCmd.AddCommand(pathCmd)
}

func runPath(cmd *cobra.Command, args []string) error {
	coords, err := maven.ParseCoordinates(args[0])
	if err != nil {
		return printer.Error("invalid coordinates", err.Error(), []string{"Use GROUP:ARTIFACT:VERSION[:TYPE[:CLASSIFIER]], e.g. com.acme:app:1.0"})
	}
	artifact := maven.NewFactory().CreateArtifactWithClassifier(coords.GroupID, coords.ArtifactID, coords.Version, coords.Type, coords.Classifier)

	if !pathAbsolute {
		fmt.Fprintln(cmd.OutOrStdout(), maven.DefaultLayout{}.PathOf(artifact.Coordinates))
		return nil
	}

	cfg, err := config.NewFileStore(configPath).Read(nil)
	if err != nil {
		return printer.Error("invalid configuration", err.Error(), []string{fmt.Sprintf("Fix %s", configPath)})
	}
	fmt.Fprintln(cmd.OutOrStdout(), cfg.SourceRepository().FileOf(artifact.Coordinates))
	return nil
}
