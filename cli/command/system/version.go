package system

import (
	"fmt"
	"runtime"
	"strings"
	"text/template"

	"github.com/bacalhau-project/apiclient/api/types/requester"
	"github.com/bacalhau-project/apiclient/cli"
	"github.com/bacalhau-project/apiclient/cli/command"
	"github.com/bacalhau-project/apiclient/version"
	"github.com/containerd/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

const defaultVersionTemplate = `Client:
 Version:      {{.Client.GitVersion}}
 Git commit:   {{.Client.GitCommit}}
 Built:        {{.Client.BuildDate}}
 OS/Arch:      {{.Client.GOOS}}/{{.Client.GOARCH}}
{{- if .Server}}

Server:
 Version:      {{.Server.GitVersion}}
 Git commit:   {{.Server.GitCommit}}
 Built:        {{.Server.BuildDate}}
 OS/Arch:      {{.Server.GOOS}}/{{.Server.GOARCH}}
{{- end}}`

type versionOptions struct {
	format string
}

// versionInfo contains version information of both the Client, and Server
type versionInfo struct {
	Client requester.BuildVersionInfo
	Server *requester.BuildVersionInfo
}

func newVersionCommand(requesterCli command.Cli) *cobra.Command {
	var opts versionOptions

	cmd := &cobra.Command{
		Use:   "version [OPTIONS]",
		Short: "Show the requesterctl and requester node version information",
		Args:  cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd, requesterCli, &opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.format, "format", "f", "", "Format the output using the given Go template")

	return cmd
}

func clientVersion() requester.BuildVersionInfo {
	info := requester.BuildVersionInfo{
		GitVersion: version.Version,
		GitCommit:  version.GitCommit,
		BuildDate:  version.BuildTime,
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
	}
	if semver.IsValid(version.Version) {
		mm := strings.SplitN(strings.TrimPrefix(semver.MajorMinor(version.Version), "v"), ".", 2)
		info.Major = mm[0]
		if len(mm) > 1 {
			info.Minor = mm[1]
		}
	}
	return info
}

func runVersion(cmd *cobra.Command, requesterCli command.Cli, opts *versionOptions) error {
	ctx := cmd.Context()

	templateFormat := defaultVersionTemplate
	if opts.format != "" {
		templateFormat = opts.format
	}
	tmpl, err := template.New("").Parse(templateFormat)
	if err != nil {
		return cli.StatusError{
			StatusCode: 64,
			Status:     "Template parsing error: " + err.Error(),
		}
	}

	vd := versionInfo{Client: clientVersion()}

	resp, err := requesterCli.Client().Version(ctx, &requester.VersionRequest{
		ClientID: requesterCli.ConfigFile().ClientID,
	})
	if err == nil {
		vd.Server = resp.VersionInfo
	}
	if vd.Server != nil {
		if w := versionMismatch(vd.Client.GitVersion, vd.Server.GitVersion); w != "" {
			fmt.Fprintln(requesterCli.Err(), w)
		}
	}

	if tmplErr := tmpl.Execute(requesterCli.Out(), vd); tmplErr != nil {
		return errors.Wrap(tmplErr, "failed to execute version template")
	}
	fmt.Fprintln(requesterCli.Out())
	if err != nil {
		log.G(ctx).WithError(err).Debug("failed to get server version")
	}
	return err
}

// versionMismatch returns a warning when the client and server differ in
// their major or minor version. Versions that are not valid semantic
// versions are not compared.
func versionMismatch(client, server string) string {
	client, server = canonicalVersion(client), canonicalVersion(server)
	if !semver.IsValid(client) || !semver.IsValid(server) {
		return ""
	}
	if semver.MajorMinor(client) == semver.MajorMinor(server) {
		return ""
	}
	return fmt.Sprintf("WARNING: client version %s does not match server version %s", client, server)
}

func canonicalVersion(v string) string {
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
