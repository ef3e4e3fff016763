package job

import (
	"context"
	"sync/atomic"

	"github.com/bacalhau-project/apiclient/api/types/requester"
	"github.com/bacalhau-project/apiclient/cli"
	"github.com/bacalhau-project/apiclient/cli/command"
	"github.com/bacalhau-project/apiclient/cli/command/formatter"
	"github.com/bacalhau-project/apiclient/client"
	"github.com/spf13/cobra"
)

type eventsOptions struct {
	format  string
	noTrunc bool
	jobs    []string
	call    callOptions
}

func newEventsCommand(requesterCli command.Cli) *cobra.Command {
	var options eventsOptions

	cmd := &cobra.Command{
		Use:   "events [OPTIONS] JOB [JOB...]",
		Short: "Show the event log of one or more jobs",
		Args:  cli.RequiresMinArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.jobs = args
			return runEvents(cmd.Context(), requesterCli, options)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&options.format, "format", "", "Pretty-print events using a Go template, or \"json\"")
	flags.BoolVar(&options.noTrunc, "no-trunc", false, "Don't truncate output")
	options.call.installFlags(flags)

	return cmd
}

func runEvents(ctx context.Context, requesterCli command.Cli, options eventsOptions) error {
	apiClient := requesterCli.Client()
	clientID := requesterCli.ConfigFile().ClientID
	var written atomic.Bool
	resps, err := forEach(ctx, options.jobs, func(ctx context.Context, id string) (requester.EventsResponse, error) {
		req := &requester.EventsRequest{ClientID: clientID, JobID: id}
		resp, w, err := execute(ctx, requesterCli, options.call,
			func(ctx context.Context, opts ...client.CallOption) (requester.EventsResponse, error) {
				return apiClient.Events(ctx, req, opts...)
			},
			func(ctx context.Context, opts ...client.CallOption) *client.Handle[requester.EventsResponse] {
				return apiClient.EventsAsync(ctx, req, opts...)
			},
		)
		if w {
			written.Store(true)
		}
		return resp, err
	})
	if err != nil || written.Load() {
		return err
	}

	var events []requester.JobHistory
	for _, r := range resps {
		events = append(events, r.Events...)
	}
	eventCtx := formatter.Context{
		Output: requesterCli.Out(),
		Format: formatter.NewEventFormat(options.format),
		Trunc:  !options.noTrunc,
	}
	return formatter.EventWrite(eventCtx, events)
}
