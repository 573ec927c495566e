// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/jiraseed/internal/config"
)

// globalFlags are shared by every command that talks to Jira or logs.
type globalFlags struct {
	propertiesFile string
	logFormat      string
	verbose        int
}

// Root returns the root command for the jiraseed CLI.
//
// Connection settings are resolved by viper from flags, environment
// (OB_SETUP_JIRA_URL, ...), an optional properties file, and defaults, in
// that order of precedence.
func Root() *cobra.Command {
	v := config.NewViper()
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "jiraseed",
		Short:         "Populate a Jira instance with demonstration data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.String("url", config.DefaultURL, "Jira base URL")
	pf.String("username", config.DefaultUsername, "Jira administrator username")
	pf.String("password", config.DefaultPassword, "Jira administrator password")
	pf.StringVar(&flags.propertiesFile, "properties", "", "Java-style properties file with ob.setup.jira.* keys")
	pf.StringVar(&flags.logFormat, "log-format", "text", "Log format: text or json")
	pf.CountVarP(&flags.verbose, "verbose", "v", "Increase log verbosity (repeatable)")

	// A bound flag only overrides environment and properties when set.
	_ = v.BindPFlag(config.KeyURL, pf.Lookup("url"))
	_ = v.BindPFlag(config.KeyUsername, pf.Lookup("username"))
	_ = v.BindPFlag(config.KeyPassword, pf.Lookup("password"))

	cmd.AddCommand(Populate(v, flags))
	cmd.AddCommand(Plan())
	cmd.AddCommand(Dataset())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
