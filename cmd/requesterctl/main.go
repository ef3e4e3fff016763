package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/bacalhau-project/apiclient/cli"
	"github.com/bacalhau-project/apiclient/cli/command"
	"github.com/bacalhau-project/apiclient/cli/command/commands"
	cliflags "github.com/bacalhau-project/apiclient/cli/flags"
	"github.com/bacalhau-project/apiclient/client"
	"github.com/bacalhau-project/apiclient/version"
	"github.com/containerd/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type rootOptions struct {
	version bool
	client  *cliflags.ClientOptions
}

func newRequesterCommand(requesterCli *command.RequesterCli, tp trace.TracerProvider) *cobra.Command {
	opts := rootOptions{client: cliflags.NewClientOptions()}
	var persistent *pflag.FlagSet

	cmd := &cobra.Command{
		Use:              "requesterctl [OPTIONS] COMMAND [ARG...]",
		Short:            "Submit and inspect jobs on a Bacalhau requester node",
		SilenceUsage:     true,
		SilenceErrors:    true,
		TraverseChildren: true,
		Args:             noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.version {
				fmt.Fprintf(requesterCli.Out(), "requesterctl version %s, build %s\n", version.Version, version.GitCommit)
				return nil
			}
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// flags must be the root persistent flags, not cmd.Flags()
			opts.client.SetDefaultOptions(persistent)
			if err := cliflags.SetLogLevel(opts.client.LogLevel, opts.client.Debug); err != nil {
				return err
			}
			return requesterCli.Initialize(opts.client, client.WithTraceProvider(tp))
		},
	}

	cmd.Flags().BoolVarP(&opts.version, "version", "v", false, "Print version information and quit")
	persistent = cmd.PersistentFlags()
	opts.client.InstallFlags(persistent)

	cmd.SetOut(requesterCli.Out())
	cmd.SetErr(requesterCli.Err())
	commands.AddCommands(cmd, requesterCli)

	return cmd
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	return fmt.Errorf("requesterctl: '%s' is not a requesterctl command.\nSee 'requesterctl --help'", args[0])
}

func main() {
	ctx := context.Background()
	logrus.SetOutput(os.Stderr)

	var tp trace.TracerProvider = otel.GetTracerProvider()
	sdkTP, err := getTracerProvider(ctx, os.Getenv)
	switch {
	case err == nil:
		tp = sdkTP
		otel.SetTracerProvider(sdkTP)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()
			if err := sdkTP.Shutdown(shutdownCtx); err != nil {
				log.G(ctx).WithError(err).Warn("failed to shut down tracer provider")
			}
		}()
	case errors.Is(err, errTracingDisabled):
		log.G(ctx).WithError(err).Debug("tracing disabled")
	default:
		log.G(ctx).WithError(err).Warn("failed to initialize tracing")
	}

	requesterCli := command.NewRequesterCli(os.Stdout, os.Stderr)
	cmd := newRequesterCommand(requesterCli, tp)

	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode prints err and returns the status to exit with.
func exitCode(err error) int {
	var sterr cli.StatusError
	if errors.As(err, &sterr) {
		if sterr.Status != "" {
			fmt.Fprintln(os.Stderr, sterr.Status)
		}
		// StatusError should only be used for errors, and all errors should
		// have a non-zero exit status, so never exit with 0
		if sterr.StatusCode == 0 {
			return 1
		}
		return sterr.StatusCode
	}
	fmt.Fprintln(os.Stderr, err)
	return 1
}
