package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/jiraseed/cmd/jiraseed/handlers"
)

// Plan returns the plan command.
//
// The plan command prints the issues and links a populate run would create
// on an empty instance, without contacting Jira.
func Plan() *cobra.Command {
	var opts handlers.PlanOptions

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the issues and links populate would create",
		Long: `Plan synthesizes every issue and link from the dataset and prints them
as tables. No request is sent to Jira.

Issue keys assume a fresh instance (KEY-1, KEY-2, ...).

Example:
  jiraseed plan
  jiraseed plan --project FEAT --issues 10`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Plan(opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.DatasetPath, "dataset", "d", "", "Path to a dataset YAML file (default: built-in dataset)")
	cmd.Flags().IntVar(&opts.IssueCount, "issues", -1, "Issues per project (default: from dataset)")
	cmd.Flags().StringVarP(&opts.Project, "project", "p", "", "Only show this project key")

	return cmd
}
