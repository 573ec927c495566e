package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/imamik/jiraseed/cmd/jiraseed/handlers"
	"github.com/imamik/jiraseed/internal/config"
)

// Populate returns the populate command.
//
// The populate command creates users, projects, components, versions, issues
// and issue links in dependency order. Entities that already exist are left
// untouched unless --reset is given, in which case existing projects are
// deleted and created again.
func Populate(v *viper.Viper, global *globalFlags) *cobra.Command {
	opts := handlers.PopulateOptions{Viper: v}

	cmd := &cobra.Command{
		Use:   "populate",
		Short: "Seed Jira with users, projects, issues and links",
		Long: `Populate seeds a Jira instance with demonstration data.

Entities are created in dependency order:
  1. Users (with system avatars)
  2. Projects, then their components and fix versions
  3. Issues with synthetic, repeatable field values
  4. Issue links from each project to the anchor project

Users and projects that already exist are skipped. With --reset, existing
projects are deleted and created again; users are never deleted.

Example:
  jiraseed populate --url http://localhost:2990/jira
  jiraseed populate --dataset my-dataset.yaml --issues 10 --reset --yes

WARNING: --reset deletes existing projects including all of their issues.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.PropertiesFile = global.propertiesFile
			opts.LogFormat = global.logFormat
			opts.Verbosity = global.verbose
			return handlers.Populate(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.DatasetPath, "dataset", "d", "", "Path to a dataset YAML file (default: built-in dataset)")
	f.IntVar(&opts.IssueCount, "issues", -1, "Issues per project (default: from dataset)")
	f.Bool("reset", false, "Delete and recreate projects that already exist")
	f.BoolVarP(&opts.Yes, "yes", "y", false, "Do not ask for confirmation before a reset")
	f.StringVar(&opts.MetricsFile, "metrics-file", "", "Write run metrics in Prometheus text format to this file")

	_ = v.BindPFlag(config.KeyDeleteProjects, f.Lookup("reset"))

	return cmd
}
