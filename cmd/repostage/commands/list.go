package commands

import (
	"fmt"

	"github.com/dyluth/repostage/internal/config"
	"github.com/dyluth/repostage/internal/inventory"
	"github.com/dyluth/repostage/internal/printer"
	"github.com/spf13/cobra"
)

var listOutputFormat string

var listCmd = &cobra.Command{
	Use:   "list [REPOSITORY]",
	Short: "List the artifacts of a staged repository",
	Long: `List the artifacts present in a staged repository.

Without REPOSITORY the staging repository from repostage.yml is listed.

Output Formats:
  default - One line per file: group:artifact:version and file name
  jsonl   - Line-delimited JSON, one file per line`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listOutputFormat, "output", "o", "default", "Output format: default or jsonl")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	var format inventory.OutputFormat
	switch listOutputFormat {
	case "default":
		format = inventory.OutputFormatDefault
	case "jsonl":
		format = inventory.OutputFormatJSONL
	default:
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", listOutputFormat),
			[]string{"Valid formats: default, jsonl"},
		)
	}

	dir := ""
	if len(args) > 0 {
		dir = args[0]
	} else {
		cfg, err := config.NewFileStore(configPath).Read(nil)
		if err != nil {
			return printer.Error("invalid configuration", err.Error(), []string{fmt.Sprintf("Fix %s or pass REPOSITORY", configPath)})
		}
		dir = cfg.StagingRepository
		if dir == "" {
			dir = cfg.LocalRepository
		}
	}

	if err := inventory.Write(cmd.OutOrStdout(), dir, format); err != nil {
		return printer.Error(
			"failed to list repository",
			err.Error(),
			[]string{"Run 'repostage install' first"},
		)
	}
	return nil
}
