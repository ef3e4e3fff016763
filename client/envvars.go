package client

const (
	// EnvOverrideHost is the name of the environment variable that can be used
	// to override the default host to connect to ([DefaultHost]).
	//
	// This env-var is read by [FromEnv] and [WithHostFromEnv] and when set to a
	// non-empty value, takes precedence over the default host.
	EnvOverrideHost = "REQUESTER_HOST"

	// EnvOverrideCertPath is the name of the environment variable that can be
	// used to specify the directory from which to load the TLS certificates
	// (ca.pem, cert.pem, key.pem) from. These certificates are used to configure
	// the [Client] for a TCP connection protected by TLS client authentication.
	//
	// TLS certificate verification is enabled by default if the Client is configured
	// to use a TLS connection. Refer to [EnvTLSVerify] below to learn how to
	// disable verification for testing purposes.
	EnvOverrideCertPath = "REQUESTER_CERT_PATH"

	// EnvTLSVerify is the name of the environment variable that can be used to
	// enable or disable TLS certificate verification. When set to a non-empty
	// value, TLS certificate verification is enabled, and the client is configured
	// to use a TLS connection, using certificates from the default directories
	// (within `~/.requesterctl`); refer to EnvOverrideCertPath above for additional
	// details.
	EnvTLSVerify = "REQUESTER_TLS_VERIFY"
)
