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

type resultsOptions struct {
	quiet   bool
	format  string
	noTrunc bool
	jobs    []string
	call    callOptions
}

func newResultsCommand(requesterCli command.Cli) *cobra.Command {
	var options resultsOptions

	cmd := &cobra.Command{
		Use:   "results [OPTIONS] JOB [JOB...]",
		Short: "List where the results of one or more jobs were published",
		Args:  cli.RequiresMinArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.jobs = args
			return runResults(cmd.Context(), requesterCli, options)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&options.quiet, "quiet", "q", false, "Only display result locations")
	flags.StringVar(&options.format, "format", "", "Pretty-print results using a Go template, or \"json\"")
	flags.BoolVar(&options.noTrunc, "no-trunc", false, "Don't truncate output")
	options.call.installFlags(flags)

	return cmd
}

func runResults(ctx context.Context, requesterCli command.Cli, options resultsOptions) error {
	apiClient := requesterCli.Client()
	clientID := requesterCli.ConfigFile().ClientID
	var written atomic.Bool
	resps, err := forEach(ctx, options.jobs, func(ctx context.Context, id string) (requester.ResultsResponse, error) {
		req := &requester.StateRequest{ClientID: clientID, JobID: id}
		resp, w, err := execute(ctx, requesterCli, options.call,
			func(ctx context.Context, opts ...client.CallOption) (requester.ResultsResponse, error) {
				return apiClient.Results(ctx, req, opts...)
			},
			func(ctx context.Context, opts ...client.CallOption) *client.Handle[requester.ResultsResponse] {
				return apiClient.ResultsAsync(ctx, req, opts...)
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

	var results []requester.PublishedResult
	for _, r := range resps {
		results = append(results, r.Results...)
	}
	resultCtx := formatter.Context{
		Output: requesterCli.Out(),
		Format: formatter.NewResultFormat(options.format, options.quiet),
		Trunc:  !options.noTrunc,
	}
	return formatter.ResultWrite(resultCtx, results)
}
