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

type describeOptions struct {
	format  string
	noTrunc bool
	jobs    []string
	call    callOptions
}

func newDescribeCommand(requesterCli command.Cli) *cobra.Command {
	var options describeOptions

	cmd := &cobra.Command{
		Use:     "describe [OPTIONS] JOB [JOB...]",
		Aliases: []string{"inspect"},
		Short:   "Display the state of one or more jobs",
		Args:    cli.RequiresMinArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.jobs = args
			return runDescribe(cmd.Context(), requesterCli, options)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&options.format, "format", "f", "", "Format the output using the given Go template, or \"table\" to list executions")
	flags.BoolVar(&options.noTrunc, "no-trunc", false, "Don't truncate output")
	options.call.installFlags(flags)

	return cmd
}

func states(ctx context.Context, requesterCli command.Cli, jobs []string, call callOptions) ([]requester.JobState, bool, error) {
	apiClient := requesterCli.Client()
	clientID := requesterCli.ConfigFile().ClientID
	var written atomic.Bool
	resps, err := forEach(ctx, jobs, func(ctx context.Context, id string) (requester.StateResponse, error) {
		req := &requester.StateRequest{ClientID: clientID, JobID: id}
		resp, w, err := execute(ctx, requesterCli, call,
			func(ctx context.Context, opts ...client.CallOption) (requester.StateResponse, error) {
				return apiClient.States(ctx, req, opts...)
			},
			func(ctx context.Context, opts ...client.CallOption) *client.Handle[requester.StateResponse] {
				return apiClient.StatesAsync(ctx, req, opts...)
			},
		)
		if w {
			written.Store(true)
		}
		return resp, err
	})
	if err != nil {
		return nil, false, err
	}
	out := make([]requester.JobState, 0, len(resps))
	for _, r := range resps {
		out = append(out, r.State)
	}
	return out, written.Load(), nil
}

func runDescribe(ctx context.Context, requesterCli command.Cli, options describeOptions) error {
	jobStates, written, err := states(ctx, requesterCli, options.jobs, options.call)
	if err != nil || written {
		return err
	}

	if formatter.Format(options.format).IsTable() {
		var executions []requester.ExecutionState
		for _, s := range jobStates {
			executions = append(executions, s.Executions...)
		}
		execCtx := formatter.Context{
			Output: requesterCli.Out(),
			Format: formatter.NewExecutionFormat(options.format),
			Trunc:  !options.noTrunc,
		}
		return formatter.ExecutionWrite(execCtx, executions)
	}

	values := make([]any, 0, len(jobStates))
	for _, s := range jobStates {
		values = append(values, s)
	}
	return formatter.Inspect(requesterCli.Out(), values, options.format)
}
