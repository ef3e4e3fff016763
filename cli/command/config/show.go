package config

import (
	"github.com/bacalhau-project/apiclient/cli"
	"github.com/bacalhau-project/apiclient/cli/command"
	"github.com/spf13/cobra"
)

func newShowCommand(requesterCli command.Cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the configuration in effect as TOML",
		Args:  cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := requesterCli.ConfigFile().Encode()
			if err != nil {
				return err
			}
			_, err = requesterCli.Out().Write(data)
			return err
		},
	}
}
