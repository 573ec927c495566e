package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/jiraseed/cmd/jiraseed/handlers"
)

// Dataset returns the dataset command group.
func Dataset() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Inspect the built-in dataset",
	}
	cmd.AddCommand(datasetExport())
	return cmd
}

func datasetExport() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the built-in dataset as YAML",
		Long: `Export writes the built-in dataset so it can be edited and passed back
to populate or plan with --dataset.

Example:
  jiraseed dataset export -o dataset.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ExportDataset(output, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}
