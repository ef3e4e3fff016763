package config

import (
	"github.com/bacalhau-project/apiclient/cli"
	"github.com/bacalhau-project/apiclient/cli/command"
	"github.com/bacalhau-project/apiclient/cli/command/formatter"
	"github.com/spf13/cobra"
)

type listOptions struct {
	quiet  bool
	format string
}

func newListCommand(requesterCli command.Cli) *cobra.Command {
	var options listOptions

	cmd := &cobra.Command{
		Use:     "list [OPTIONS]",
		Aliases: []string{"ls"},
		Short:   "List the configuration settings in effect",
		Args:    cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(requesterCli, options)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&options.quiet, "quiet", "q", false, "Only display keys")
	flags.StringVar(&options.format, "format", "", "Pretty-print settings using a Go template, or \"json\"")

	return cmd
}

func runList(requesterCli command.Cli, options listOptions) error {
	settings, err := requesterCli.ConfigFile().Settings()
	if err != nil {
		return err
	}
	configCtx := formatter.Context{
		Output: requesterCli.Out(),
		Format: formatter.NewConfigFormat(options.format, options.quiet),
	}
	return formatter.ConfigWrite(configCtx, settings)
}
