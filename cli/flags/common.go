package flags

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bacalhau-project/apiclient/cli/config"
	"github.com/bacalhau-project/apiclient/client"
	"github.com/docker/go-connections/tlsconfig"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

const (
	// DefaultCaFile is the default filename for the CA pem file
	DefaultCaFile = "ca.pem"
	// DefaultKeyFile is the default filename for the key pem file
	DefaultKeyFile = "key.pem"
	// DefaultCertFile is the default filename for the cert pem file
	DefaultCertFile = "cert.pem"
	// FlagTLSVerify is the flag name for the TLS verification option
	FlagTLSVerify = "tlsverify"
)

var (
	requesterCertPath  = os.Getenv(client.EnvOverrideCertPath)
	requesterTLSVerify = os.Getenv(client.EnvTLSVerify) != ""
)

// ClientOptions are the global options of requesterctl.
type ClientOptions struct {
	ConfigDir  string
	Debug      bool
	Host       string
	LogLevel   string
	TLS        bool
	TLSVerify  bool
	TLSOptions *tlsconfig.Options
	ClientID   string
	Timeout    time.Duration
}

// NewClientOptions returns a new ClientOptions.
func NewClientOptions() *ClientOptions {
	return &ClientOptions{}
}

// InstallFlags adds flags for the client options on the FlagSet
func (o *ClientOptions) InstallFlags(flags *pflag.FlagSet) {
	certPath := requesterCertPath
	if certPath == "" {
		certPath = config.Dir()
	}

	flags.StringVar(&o.ConfigDir, "config", config.Dir(), "Location of client config files")
	flags.BoolVarP(&o.Debug, "debug", "D", false, "Enable debug mode")
	flags.StringVarP(&o.LogLevel, "log-level", "l", "info", `Set the logging level ("debug"|"info"|"warn"|"error"|"fatal")`)
	flags.BoolVar(&o.TLS, "tls", false, "Use TLS; implied by --tlsverify")
	flags.BoolVar(&o.TLSVerify, FlagTLSVerify, requesterTLSVerify, "Use TLS and verify the remote")

	o.TLSOptions = &tlsconfig.Options{}
	tlsOptions := o.TLSOptions
	flags.StringVar(&tlsOptions.CAFile, "tlscacert", filepath.Join(certPath, DefaultCaFile), "Trust certs signed only by this CA")
	flags.StringVar(&tlsOptions.CertFile, "tlscert", filepath.Join(certPath, DefaultCertFile), "Path to TLS certificate file")
	flags.StringVar(&tlsOptions.KeyFile, "tlskey", filepath.Join(certPath, DefaultKeyFile), "Path to TLS key file")

	flags.StringVarP(&o.Host, "host", "H", "", "Requester node to connect to")
	flags.StringVar(&o.ClientID, "client-id", "", "Client ID sent with requests")
	flags.DurationVar(&o.Timeout, "timeout", 0, "Timeout of each request (0 for none)")
}

// SetDefaultOptions sets default values for options after flag parsing is
// complete
func (o *ClientOptions) SetDefaultOptions(flags *pflag.FlagSet) {
	// Regardless of whether the user sets it to true or false, if they
	// specify --tlsverify at all then we need to turn on TLS
	// TLSVerify can be true even if not set due to REQUESTER_TLS_VERIFY env var, so we need
	// to check that here as well
	if flags.Changed(FlagTLSVerify) || o.TLSVerify {
		o.TLS = true
	}

	if !o.TLS {
		o.TLSOptions = nil
		return
	}
	tlsOptions := o.TLSOptions
	tlsOptions.InsecureSkipVerify = !o.TLSVerify

	// Reset CertFile and KeyFile to empty string if the user did not specify
	// the respective flags and the respective default files were not found.
	if !flags.Changed("tlscert") {
		if _, err := os.Stat(tlsOptions.CertFile); os.IsNotExist(err) {
			tlsOptions.CertFile = ""
		}
	}
	if !flags.Changed("tlskey") {
		if _, err := os.Stat(tlsOptions.KeyFile); os.IsNotExist(err) {
			tlsOptions.KeyFile = ""
		}
	}
}

// SetLogLevel sets the logrus logging level. debug forces the debug level.
func SetLogLevel(logLevel string, debug bool) error {
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
		return nil
	}
	if logLevel == "" {
		logrus.SetLevel(logrus.InfoLevel)
		return nil
	}
	lvl, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return errors.Errorf("unable to parse logging level: %s", logLevel)
	}
	logrus.SetLevel(lvl)
	return nil
}
