package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "taskboard-cli",
		Short: "Taskboard CLI tool",
		Long: `Taskboard CLI inspects and administers a Taskboard installation.

Available commands:
  version    Print the version
  routes     List the HTTP routes the server mounts
  topics     List the event topics modules publish
  config     Print the resolved configuration with secrets masked
  user       Manage user accounts

Use "taskboard-cli [command] --help" for more information about a specific command.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newVersionCmd(),
		newRoutesCmd(),
		newTopicsCmd(),
		newConfigCmd(),
		newUserCmd(),
	)
	return root
}

// Execute executes the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
