// Package command holds the state shared by the requesterctl commands.
package command

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/bacalhau-project/apiclient/cli/config"
	cliflags "github.com/bacalhau-project/apiclient/cli/flags"
	"github.com/bacalhau-project/apiclient/client"
	"github.com/bacalhau-project/apiclient/version"
	"github.com/docker/go-connections/tlsconfig"
	"github.com/pkg/errors"
)

// Cli represents the requesterctl command line client.
type Cli interface {
	Client() client.APIClient
	Out() *OutStream
	Err() io.Writer
	ConfigFile() *config.File
}

// RequesterCli is an instance of the requesterctl command line client.
// Instances of the client can be returned from NewRequesterCli.
type RequesterCli struct {
	configFile *config.File
	out        *OutStream
	err        io.Writer
	client     client.APIClient
}

// NewRequesterCli returns a RequesterCli instance writing to out and err.
func NewRequesterCli(out, err io.Writer) *RequesterCli {
	return &RequesterCli{out: NewOutStream(out), err: err}
}

// Client returns the APIClient
func (cli *RequesterCli) Client() client.APIClient {
	return cli.client
}

// Out returns the writer used for stdout
func (cli *RequesterCli) Out() *OutStream {
	return cli.out
}

// Err returns the writer used for stderr
func (cli *RequesterCli) Err() io.Writer {
	return cli.err
}

// ConfigFile returns the configuration, merged with the command line flags.
func (cli *RequesterCli) ConfigFile() *config.File {
	return cli.configFile
}

// Initialize loads the configuration file, overlays the global flags and
// creates the API client.
func (cli *RequesterCli) Initialize(opts *cliflags.ClientOptions, clientOpts ...client.Opt) error {
	cfg, err := config.Load(opts.ConfigDir)
	if err != nil {
		return err
	}
	overrides := config.File{
		Host:     opts.Host,
		ClientID: opts.ClientID,
	}
	if opts.Timeout > 0 {
		overrides.Timeout = opts.Timeout.String()
	}
	if err := cfg.Merge(overrides); err != nil {
		return err
	}
	cli.configFile = cfg

	cli.client, err = NewAPIClientFromFlags(opts, cfg, clientOpts...)
	return err
}

// NewAPIClientFromFlags creates a new APIClient from the command line flags
// and the configuration file. The host falls back to REQUESTER_HOST, then to
// [client.DefaultHost].
func NewAPIClientFromFlags(opts *cliflags.ClientOptions, cfg *config.File, extra ...client.Opt) (*client.Client, error) {
	host := cfg.Host
	if host == "" {
		host = os.Getenv(client.EnvOverrideHost)
	}
	if host == "" {
		host = client.DefaultHost
	}

	var clientOpts []client.Opt
	httpClient, err := newHTTPClient(tlsOptions(opts, cfg))
	if err != nil {
		return nil, err
	}
	if httpClient != nil {
		clientOpts = append(clientOpts, client.WithHTTPClient(httpClient))
	}
	clientOpts = append(clientOpts,
		client.WithHost(host),
		client.WithUserAgent(UserAgent()),
	)
	if cfg.Timeout != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid timeout %q in %s", cfg.Timeout, cfg.Filename)
		}
		clientOpts = append(clientOpts, client.WithTimeout(d))
	}
	return client.NewClientWithOpts(append(clientOpts, extra...)...)
}

// UserAgent returns the user agent string used for making API requests.
func UserAgent() string {
	return "requesterctl/" + version.Version
}

func tlsOptions(opts *cliflags.ClientOptions, cfg *config.File) *tlsconfig.Options {
	if opts.TLSOptions != nil {
		return opts.TLSOptions
	}
	if !cfg.TLS.Enabled && !cfg.TLS.Verify {
		return nil
	}
	return &tlsconfig.Options{
		CAFile:             cfg.TLS.CACert,
		CertFile:           cfg.TLS.Cert,
		KeyFile:            cfg.TLS.Key,
		InsecureSkipVerify: !cfg.TLS.Verify,
	}
}

func newHTTPClient(tlsOptions *tlsconfig.Options) (*http.Client, error) {
	if tlsOptions == nil {
		// let the api client configure the default transport.
		return nil, nil
	}
	config, err := tlsconfig.Client(*tlsOptions)
	if err != nil {
		return nil, err
	}
	return &http.Client{
		Transport:     &http.Transport{TLSClientConfig: config},
		CheckRedirect: client.CheckRedirect,
	}, nil
}
