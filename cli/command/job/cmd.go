// Package job implements the requesterctl commands that operate on jobs.
package job

import (
	"github.com/bacalhau-project/apiclient/cli/command"
	"github.com/spf13/cobra"
)

// maxConcurrency bounds the requests made in parallel by commands taking
// several job IDs.
const maxConcurrency = 4

// AddCommands adds the job commands to cmd.
func AddCommands(cmd *cobra.Command, requesterCli command.Cli) {
	cmd.AddCommand(
		newListCommand(requesterCli),
		newDescribeCommand(requesterCli),
		newEventsCommand(requesterCli),
		newLocalEventsCommand(requesterCli),
		newResultsCommand(requesterCli),
		newSubmitCommand(requesterCli),
	)
}
