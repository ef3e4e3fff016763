/*
Package client is a Go client for the requester API of a job-execution
network.

A requester node accepts jobs, schedules them on compute nodes and keeps
their history. This package exposes one typed method per API operation;
requests and responses are the models in
[github.com/bacalhau-project/apiclient/api/types/requester].

# Usage

Create a client with [NewClientWithOpts], then call its methods:

	package main

	import (
		"context"
		"fmt"

		"github.com/bacalhau-project/apiclient/api/types/requester"
		"github.com/bacalhau-project/apiclient/client"
	)

	func main() {
		apiClient, err := client.NewClientWithOpts(client.FromEnv)
		if err != nil {
			panic(err)
		}
		defer apiClient.Close()

		resp, err := apiClient.List(context.Background(), &requester.ListRequest{ReturnAll: true})
		if err != nil {
			panic(err)
		}
		for _, j := range resp.Jobs {
			fmt.Println(j.Metadata.ID)
		}
	}

Every operation has an Async variant returning a [Handle] that can be
waited on or cancelled.
*/
package client

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/docker/go-connections/sockets"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultHost is the address of a requester node started with default
// settings on the local machine.
const DefaultHost = "http://127.0.0.1:1234"

// DummyHost is a hostname used for local communication.
//
// It acts as a valid formatted hostname for local connections (such as "unix://"
// or "npipe://") which do not require a hostname. It should never be resolved,
// but uses the special-purpose ".localhost" TLD (as defined in [RFC 2606, Section 2]
// and [RFC 6761, Section 6.3]).
//
// [RFC 2606, Section 2]: https://www.rfc-editor.org/rfc/rfc2606.html#section-2
// [RFC 6761, Section 6.3]: https://www.rfc-editor.org/rfc/rfc6761#section-6.3
const DummyHost = "api.requester.localhost"

// Client is the API client that performs all operations against a requester
// node.
type Client struct {
	clientConfig

	// baseTransport is the transport before the tracing wrapper is applied.
	baseTransport *http.Transport
}

// ErrRedirect is the error returned by checkRedirect when the request is non-GET.
var ErrRedirect = fmt.Errorf("unexpected redirect in response")

// CheckRedirect specifies the policy for dealing with redirect responses. It
// can be set on [http.Client.CheckRedirect] to prevent HTTP redirects for
// non-GET requests. It returns an [ErrRedirect] for non-GET request, otherwise
// returns a [http.ErrUseLastResponse], which is special-cased by http.Client
// to use the last response.
//
// Go 1.8 changed behavior for HTTP redirects (specifically 301, 307, and 308)
// in the client. The client (and by extension API client) can be made to send
// a request like "POST /requester/submit" which results in a redirect response
// from the server. Without this policy the body would be re-sent to the
// redirect target, which is not what a caller submitting a job expects.
func CheckRedirect(_ *http.Request, via []*http.Request) error {
	if via[0].Method == http.MethodGet {
		return http.ErrUseLastResponse
	}
	return ErrRedirect
}

// NewClientWithOpts initializes a new API client with a default HTTPClient, and
// default API host. It can be used to override the HTTPClient, the host, and to
// tune tracing, metrics and rate limiting. It returns an error if any of the
// options fail.
//
//	cli, err := client.NewClientWithOpts(
//		client.WithHost("http://requester.example.com:1234"),
//		client.WithTimeout(30*time.Second),
//	)
func NewClientWithOpts(ops ...Opt) (*Client, error) {
	hostURL, err := ParseHostURL(DefaultHost)
	if err != nil {
		return nil, err
	}

	client, err := defaultHTTPClient(hostURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		clientConfig: clientConfig{
			host:   DefaultHost,
			proto:  hostURL.Scheme,
			addr:   hostURL.Host,
			client: client,
		},
	}

	for _, op := range ops {
		if err := op(&c.clientConfig); err != nil {
			return nil, err
		}
	}

	if tr, ok := c.client.Transport.(*http.Transport); ok {
		// Store the base transport before we wrap it in tracing libs below
		// This is used, as an example, to close idle connections when the client is closed
		c.baseTransport = tr
	}

	if c.scheme == "" {
		// tcp:// hosts carry no scheme; pick one from the transport.
		if c.tlsConfig() != nil {
			c.scheme = "https"
		} else {
			c.scheme = "http"
		}
	}

	c.client.Transport = otelhttp.NewTransport(
		c.client.Transport,
		append(c.traceOpts,
			otelhttp.WithSpanNameFormatter(func(_ string, req *http.Request) string {
				return req.Method + " " + req.URL.Path
			}),
		)...,
	)

	return c, nil
}

func (cli *clientConfig) tlsConfig() *tls.Config {
	if tr, ok := cli.client.Transport.(*http.Transport); ok && tr.TLSClientConfig != nil {
		return tr.TLSClientConfig
	}
	return nil
}

func defaultHTTPClient(hostURL *url.URL) (*http.Client, error) {
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     30 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	if err := sockets.ConfigureTransport(transport, hostURL.Scheme, hostURL.Host); err != nil {
		return nil, err
	}
	return &http.Client{
		Transport:     transport,
		CheckRedirect: CheckRedirect,
	}, nil
}

// Close the transport used by the client
func (cli *Client) Close() error {
	if cli.baseTransport != nil {
		cli.baseTransport.CloseIdleConnections()
		return nil
	}
	return nil
}

// Host returns the host address used by the client
func (cli *Client) Host() string {
	return cli.host
}

// HTTPClient returns a copy of the HTTP client bound to the server
func (cli *Client) HTTPClient() *http.Client {
	c := *cli.client
	return &c
}

// ParseHostURL parses a url string, validates the string is a host url, and
// returns the parsed URL. "http" and "https" URLs are dialed over TCP; the
// scheme of an "https" URL selects TLS.
func ParseHostURL(host string) (*url.URL, error) {
	proto, addr, ok := strings.Cut(host, "://")
	if !ok || addr == "" {
		return nil, invalidParameter("unable to parse requester host `%s`", host)
	}

	var basePath string
	switch proto {
	case "tcp", "http", "https":
		parsed, err := url.Parse("tcp://" + addr)
		if err != nil {
			return nil, invalidParameter("unable to parse requester host `%s`: %w", host, err)
		}
		if _, _, err := net.SplitHostPort(parsed.Host); err != nil {
			return nil, invalidParameter("unable to parse requester host `%s`: %w", host, err)
		}
		addr = parsed.Host
		basePath = strings.TrimSuffix(parsed.Path, "/")
		proto = "tcp"
	case "unix", "npipe":
	default:
		return nil, invalidParameter("unsupported protocol %q in requester host `%s`", proto, host)
	}
	return &url.URL{
		Scheme: proto,
		Host:   addr,
		Path:   basePath,
	}, nil
}

// hostScheme returns the URL scheme implied by host, or "" when the host
// does not imply one.
func hostScheme(host string) string {
	switch {
	case strings.HasPrefix(host, "https://"):
		return "https"
	case strings.HasPrefix(host, "http://"):
		return "http"
	default:
		return ""
	}
}
