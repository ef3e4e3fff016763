// Package system implements the requesterctl commands about the client and
// the requester node.
package system

import (
	"github.com/bacalhau-project/apiclient/cli/command"
	"github.com/spf13/cobra"
)

// AddCommands adds the system commands to cmd.
func AddCommands(cmd *cobra.Command, requesterCli command.Cli) {
	cmd.AddCommand(
		newVersionCommand(requesterCli),
		newNodeCommand(requesterCli),
		newIDCommand(requesterCli),
	)
}
