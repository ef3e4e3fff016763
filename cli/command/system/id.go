package system

import (
	"fmt"

	"github.com/bacalhau-project/apiclient/cli"
	"github.com/bacalhau-project/apiclient/cli/command"
	"github.com/containerd/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newIDCommand(requesterCli command.Cli) *cobra.Command {
	return &cobra.Command{
		Use:   "id",
		Short: "Print the client ID, generating one on first use",
		Args:  cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := requesterCli.ConfigFile()
			if cfg.ClientID == "" {
				cfg.ClientID = uuid.NewString()
				if err := cfg.Save(); err != nil {
					return errors.Wrap(err, "failed to save client ID")
				}
				log.G(cmd.Context()).WithField("file", cfg.Filename).Debug("generated client ID")
			}
			_, err := fmt.Fprintln(requesterCli.Out(), cfg.ClientID)
			return err
		},
	}
}
