// Package commands assembles the requesterctl command tree.
package commands

import (
	"github.com/bacalhau-project/apiclient/cli/command"
	"github.com/bacalhau-project/apiclient/cli/command/config"
	"github.com/bacalhau-project/apiclient/cli/command/job"
	"github.com/bacalhau-project/apiclient/cli/command/system"
	"github.com/spf13/cobra"
)

// AddCommands adds all the commands from cli/command to the root command
func AddCommands(cmd *cobra.Command, requesterCli command.Cli) {
	job.AddCommands(cmd, requesterCli)
	system.AddCommands(cmd, requesterCli)
	cmd.AddCommand(config.NewConfigCommand(requesterCli))
}
