// Package config implements the commands that inspect the requesterctl
// configuration.
package config

import (
	"github.com/bacalhau-project/apiclient/cli"
	"github.com/bacalhau-project/apiclient/cli/command"
	"github.com/spf13/cobra"
)

// NewConfigCommand returns the config command group.
func NewConfigCommand(requesterCli command.Cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the requesterctl configuration",
		Args:  cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		newListCommand(requesterCli),
		newShowCommand(requesterCli),
	)
	return cmd
}
