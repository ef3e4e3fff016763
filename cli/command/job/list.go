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

type listOptions struct {
	quiet       bool
	all         bool
	noTrunc     bool
	format      string
	id          string
	maxJobs     int
	includeTags []string
	excludeTags []string
	sortBy      string
	reverse     bool
	call        callOptions
}

func newListCommand(requesterCli command.Cli) *cobra.Command {
	options := listOptions{}

	cmd := &cobra.Command{
		Use:     "list [OPTIONS]",
		Aliases: []string{"ls"},
		Short:   "List jobs",
		Args:    cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), requesterCli, options)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&options.quiet, "quiet", "q", false, "Only display job IDs")
	flags.BoolVarP(&options.all, "all", "a", false, "List the jobs of all clients")
	flags.BoolVar(&options.noTrunc, "no-trunc", false, "Don't truncate output")
	flags.StringVar(&options.format, "format", "", "Pretty-print jobs using a Go template, or \"json\"")
	flags.StringVar(&options.id, "id", "", "Only list the job with this ID")
	flags.IntVarP(&options.maxJobs, "number", "n", 10, "Maximum number of jobs to list")
	flags.StringSliceVar(&options.includeTags, "include-tag", nil, "Only list jobs with this annotation")
	flags.StringSliceVar(&options.excludeTags, "exclude-tag", nil, "Do not list jobs with this annotation")
	flags.StringVar(&options.sortBy, "sort-by", "created_at", "Sort jobs by field (\"created_at\"|\"id\")")
	flags.BoolVar(&options.reverse, "reverse", false, "Reverse the sort order")
	options.call.installFlags(flags)

	return cmd
}

func runList(ctx context.Context, requesterCli command.Cli, options listOptions) error {
	req := &requester.ListRequest{
		JobID:       options.id,
		ClientID:    requesterCli.ConfigFile().ClientID,
		IncludeTags: options.includeTags,
		ExcludeTags: options.excludeTags,
		MaxJobs:     options.maxJobs,
		ReturnAll:   options.all,
		SortBy:      options.sortBy,
		SortReverse: options.reverse,
	}
	apiClient := requesterCli.Client()
	resp, written, err := execute(ctx, requesterCli, options.call,
		func(ctx context.Context, opts ...client.CallOption) (requester.ListResponse, error) {
			return apiClient.List(ctx, req, opts...)
		},
		func(ctx context.Context, opts ...client.CallOption) *client.Handle[requester.ListResponse] {
			return apiClient.ListAsync(ctx, req, opts...)
		},
	)
	if err != nil || written {
		return err
	}

	jobCtx := formatter.Context{
		Output: requesterCli.Out(),
		Format: formatter.NewJobFormat(options.format, options.quiet),
		Trunc:  !options.noTrunc,
	}
	return formatter.JobWrite(jobCtx, resp.Jobs)
}
