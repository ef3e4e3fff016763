package system

import (
	"github.com/bacalhau-project/apiclient/api/types/requester"
	"github.com/bacalhau-project/apiclient/cli"
	"github.com/bacalhau-project/apiclient/cli/command"
	"github.com/bacalhau-project/apiclient/cli/command/formatter"
	"github.com/spf13/cobra"
)

type nodeOptions struct {
	format  string
	noTrunc bool
}

func newNodeCommand(requesterCli command.Cli) *cobra.Command {
	var opts nodeOptions

	cmd := &cobra.Command{
		Use:   "node [OPTIONS]",
		Short: "Display information about the requester node",
		Args:  cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := requesterCli.Client().NodeInfo(cmd.Context())
			if err != nil {
				return err
			}
			nodeCtx := formatter.Context{
				Output: requesterCli.Out(),
				Format: formatter.NewNodeFormat(opts.format),
				Trunc:  !opts.noTrunc,
			}
			return formatter.NodeWrite(nodeCtx, []requester.NodeInfo{info})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.format, "format", "", "Pretty-print node information using a Go template, or \"json\"")
	flags.BoolVar(&opts.noTrunc, "no-trunc", false, "Don't truncate output")

	return cmd
}
