package client

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	cerrdefs "github.com/containerd/errdefs"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"gotest.tools/v3/env"
)

func TestNewClientWithOpsFromEnv(t *testing.T) {
	testcases := []struct {
		doc             string
		envs            map[string]string
		expectedError   string
		expectedHost    string
		expectedAddr    string
		expectedScheme  string
		expectedBaseDir string
	}{
		{
			doc:            "default api host",
			envs:           map[string]string{},
			expectedHost:   DefaultHost,
			expectedAddr:   "127.0.0.1:1234",
			expectedScheme: "http",
		},
		{
			doc: "invalid cert path",
			envs: map[string]string{
				"REQUESTER_CERT_PATH": "invalid/path",
			},
			expectedError: "could not read CA certificate \"invalid/path/ca.pem\": open invalid/path/ca.pem: no such file or directory",
		},
		{
			doc: "https host",
			envs: map[string]string{
				"REQUESTER_HOST": "https://requester.example.com:1234",
			},
			expectedHost:   "https://requester.example.com:1234",
			expectedAddr:   "requester.example.com:1234",
			expectedScheme: "https",
		},
		{
			doc: "tcp host with base path",
			envs: map[string]string{
				"REQUESTER_HOST": "tcp://10.0.0.5:1234/api/",
			},
			expectedHost:    "tcp://10.0.0.5:1234/api/",
			expectedAddr:    "10.0.0.5:1234",
			expectedScheme:  "http",
			expectedBaseDir: "/api",
		},
		{
			doc: "invalid host",
			envs: map[string]string{
				"REQUESTER_HOST": "requester.example.com",
			},
			expectedError: "unable to parse requester host `requester.example.com`",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.doc, func(t *testing.T) {
			env.PatchAll(t, tc.envs)
			client, err := NewClientWithOpts(FromEnv)
			if tc.expectedError != "" {
				assert.Check(t, is.Error(err, tc.expectedError))
				return
			}
			assert.NilError(t, err)
			assert.Check(t, is.Equal(client.Host(), tc.expectedHost))
			assert.Check(t, is.Equal(client.addr, tc.expectedAddr))
			assert.Check(t, is.Equal(client.scheme, tc.expectedScheme))
			assert.Check(t, is.Equal(client.basePath, tc.expectedBaseDir))
		})
	}
}

func TestParseHostURL(t *testing.T) {
	testcases := []struct {
		host        string
		expected    *url.URL
		expectedErr string
	}{
		{
			host:        "",
			expectedErr: "unable to parse requester host",
		},
		{
			host:        "foobar",
			expectedErr: "unable to parse requester host",
		},
		{
			host:        "foo://",
			expectedErr: "unable to parse requester host",
		},
		{
			host:        "ftp://example.com:21",
			expectedErr: `unsupported protocol "ftp"`,
		},
		{
			host:        "http://example.com",
			expectedErr: "missing port in address",
		},
		{
			host:     "unix:///var/run/requester.sock",
			expected: &url.URL{Scheme: "unix", Host: "/var/run/requester.sock"},
		},
		{
			host:     "http://127.0.0.1:1234",
			expected: &url.URL{Scheme: "tcp", Host: "127.0.0.1:1234"},
		},
		{
			host:     "https://[::1]:443/path",
			expected: &url.URL{Scheme: "tcp", Host: "[::1]:443", Path: "/path"},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.host, func(t *testing.T) {
			actual, err := ParseHostURL(tc.host)
			if tc.expectedErr != "" {
				assert.Check(t, is.ErrorContains(err, tc.expectedErr))
				assert.Check(t, cerrdefs.IsInvalidArgument(err))
				assert.Check(t, is.Nil(actual))
			} else {
				assert.NilError(t, err)
				assert.Check(t, is.DeepEqual(actual, tc.expected))
			}
		})
	}
}

func TestWithHostUnixSetsDummyHost(t *testing.T) {
	client, err := NewClientWithOpts(
		WithHTTPClient(newMockClient(func(req *http.Request) (*http.Response, error) {
			assert.Check(t, is.Equal(req.Host, DummyHost))
			assert.Check(t, is.Equal(req.URL.Path, "/node_info"))
			return mockJSONResponse(`{"NodeType":"Requester"}`)(req)
		})),
		WithHost("unix:///var/run/requester.sock"),
	)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(client.proto, "unix"))

	info, err := client.NodeInfo(context.Background())
	assert.NilError(t, err)
	assert.Check(t, is.Equal(string(info.NodeType), "Requester"))
}

func TestBasePathIsPrefixed(t *testing.T) {
	client, err := NewClientWithOpts(
		WithHTTPClient(newMockClient(func(req *http.Request) (*http.Response, error) {
			assert.Check(t, is.Equal(req.URL.Path, "/api/v1/requester/list"))
			return mockJSONResponse(`{}`)(req)
		})),
		WithHost("http://127.0.0.1:1234/api/v1"),
	)
	assert.NilError(t, err)

	_, err = client.List(context.Background(), &requesterListRequest)
	assert.NilError(t, err)
}

func TestUserAgentAndCustomHeaders(t *testing.T) {
	client, err := NewClientWithOpts(
		WithHTTPClient(newMockClient(func(req *http.Request) (*http.Response, error) {
			assert.Check(t, is.Equal(req.Header.Get("User-Agent"), "requesterctl/1.0"))
			assert.Check(t, is.Equal(req.Header.Get("X-Trace"), "abc"))
			// negotiated headers win over custom ones
			assert.Check(t, is.Equal(req.Header.Get("Accept"), "application/json"))
			return mockJSONResponse(`{}`)(req)
		})),
		WithUserAgent("requesterctl/1.0"),
		WithHTTPHeaders(map[string]string{
			"X-Trace":    "abc",
			"Accept":     "text/plain",
			"User-Agent": "ignored",
		}),
	)
	assert.NilError(t, err)

	_, err = client.List(context.Background(), &requesterListRequest)
	assert.NilError(t, err)
}

func TestEmptyUserAgentRemovesHeader(t *testing.T) {
	client, err := NewClientWithOpts(
		WithHTTPClient(newMockClient(func(req *http.Request) (*http.Response, error) {
			_, ok := req.Header["User-Agent"]
			assert.Check(t, !ok, "User-Agent should be removed")
			return mockJSONResponse(`{}`)(req)
		})),
		WithUserAgent(""),
	)
	assert.NilError(t, err)

	_, err = client.List(context.Background(), &requesterListRequest)
	assert.NilError(t, err)
}

func TestWithRateLimitInvalid(t *testing.T) {
	_, err := NewClientWithOpts(WithRateLimit(0, 1))
	assert.Check(t, is.ErrorContains(err, "invalid rate limit"))
	assert.Check(t, cerrdefs.IsInvalidArgument(err))
}

func TestCloseWithoutTransport(t *testing.T) {
	client, err := NewClientWithOpts(WithHTTPClient(newMockClient(mockJSONResponse(`{}`))))
	assert.NilError(t, err)
	assert.NilError(t, client.Close())
}
