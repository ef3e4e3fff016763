package job

import (
	"context"

	"github.com/bacalhau-project/apiclient/api/types/requester"
	"github.com/bacalhau-project/apiclient/cli"
	"github.com/bacalhau-project/apiclient/cli/command"
	"github.com/bacalhau-project/apiclient/cli/command/formatter"
	"github.com/bacalhau-project/apiclient/client"
	"github.com/spf13/cobra"
)

type localEventsOptions struct {
	format  string
	noTrunc bool
	job     string
	call    callOptions
}

func newLocalEventsCommand(requesterCli command.Cli) *cobra.Command {
	var options localEventsOptions

	cmd := &cobra.Command{
		Use:   "local-events [OPTIONS] JOB",
		Short: "Show the events the requester node recorded locally for a job",
		Args:  cli.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.job = args[0]
			return runLocalEvents(cmd.Context(), requesterCli, options)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&options.format, "format", "", "Pretty-print events using a Go template, or \"json\"")
	flags.BoolVar(&options.noTrunc, "no-trunc", false, "Don't truncate output")
	options.call.installFlags(flags)

	return cmd
}

func runLocalEvents(ctx context.Context, requesterCli command.Cli, options localEventsOptions) error {
	apiClient := requesterCli.Client()
	req := &requester.LocalEventsRequest{
		ClientID: requesterCli.ConfigFile().ClientID,
		JobID:    options.job,
	}
	resp, written, err := execute(ctx, requesterCli, options.call,
		func(ctx context.Context, opts ...client.CallOption) (requester.LocalEventsResponse, error) {
			return apiClient.LocalEvents(ctx, req, opts...)
		},
		func(ctx context.Context, opts ...client.CallOption) *client.Handle[requester.LocalEventsResponse] {
			return apiClient.LocalEventsAsync(ctx, req, opts...)
		},
	)
	if err != nil || written {
		return err
	}

	eventCtx := formatter.Context{
		Output: requesterCli.Out(),
		Format: formatter.NewLocalEventFormat(options.format),
		Trunc:  !options.noTrunc,
	}
	return formatter.LocalEventWrite(eventCtx, resp.LocalEvents)
}
