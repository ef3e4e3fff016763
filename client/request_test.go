package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"

	"github.com/bacalhau-project/apiclient/api/types/requester"
	cerrdefs "github.com/containerd/errdefs"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestResponseErrors(t *testing.T) {
	tests := []struct {
		doc         string
		contentType string
		response    string
		expected    string
	}{
		{
			// Valid (empty) JSON but no message.
			doc:         "JSON without message",
			contentType: "application/json",
			response:    `{}`,
			expected:    `error response from requester node: API returned a 400 (Bad Request) but provided no error-message`,
		},
		{
			doc:         "JSON with message",
			contentType: "application/json",
			response:    `{"message":"Some error occurred"}`,
			expected:    `error response from requester node: Some error occurred`,
		},
		{
			doc:         "JSON with error key",
			contentType: "application/json; charset=utf-8",
			response:    `{"error":"job_id is required"}`,
			expected:    `error response from requester node: job_id is required`,
		},
		{
			// Malformed JSON, which should be returned verbatim as error.
			doc:         "malformed JSON",
			contentType: "application/json",
			response:    `{"message":"Some error occurred`,
			expected:    `error reading JSON: unexpected end of JSON input`,
		},
		{
			// Plain-text error, which should be returned verbatim as error.
			doc:         "plain-text error",
			contentType: "text/plain",
			response:    `Some error occurred`,
			expected:    `error response from requester node: Some error occurred`,
		},
		{
			doc:         "empty body",
			contentType: "text/plain",
			response:    ``,
			expected:    `request returned 400 Bad Request`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.doc, func(t *testing.T) {
			client, err := NewClientWithOpts(WithHTTPClient(newMockClient(func(req *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusBadRequest,
					Status:     "400 Bad Request",
					Header:     http.Header{"Content-Type": []string{tc.contentType}},
					Body:       io.NopCloser(bytes.NewReader([]byte(tc.response))),
					Request:    req,
				}, nil
			})))
			assert.NilError(t, err)
			_, err = client.List(context.Background(), &requesterListRequest)
			assert.Check(t, is.Error(err, tc.expected))
			assert.Check(t, cerrdefs.IsInvalidArgument(err))
		})
	}
}

func TestResponseErrorOversizedBody(t *testing.T) {
	client, err := NewClientWithOpts(WithHTTPClient(newMockClient(
		plainTextErrorMock(http.StatusInternalServerError, strings.Repeat("x", 1024*1024+1)),
	)))
	assert.NilError(t, err)

	_, err = client.List(context.Background(), &requesterListRequest)
	assert.Check(t, is.ErrorContains(err, "with a message (> 1048576 bytes)"))
	assert.Check(t, cerrdefs.IsInternal(err))
}

func TestStatusCodeClassification(t *testing.T) {
	tests := []struct {
		status int
		check  func(error) bool
	}{
		{status: http.StatusBadRequest, check: cerrdefs.IsInvalidArgument},
		{status: http.StatusUnauthorized, check: cerrdefs.IsUnauthorized},
		{status: http.StatusForbidden, check: cerrdefs.IsPermissionDenied},
		{status: http.StatusNotFound, check: cerrdefs.IsNotFound},
		{status: http.StatusConflict, check: cerrdefs.IsConflict},
		{status: http.StatusNotImplemented, check: cerrdefs.IsNotImplemented},
		{status: http.StatusServiceUnavailable, check: cerrdefs.IsUnavailable},
		{status: http.StatusInternalServerError, check: cerrdefs.IsInternal},
		{status: http.StatusBadGateway, check: cerrdefs.IsInternal},
		{status: http.StatusTeapot, check: cerrdefs.IsUnknown},
	}
	for _, tc := range tests {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			client, err := NewClientWithOpts(WithHTTPClient(newMockClient(errorMock(tc.status, "boom"))))
			assert.NilError(t, err)

			_, err = client.Events(context.Background(), &requester.EventsRequest{JobID: "job-1"})
			assert.Check(t, is.ErrorContains(err, "boom"))
			assert.Check(t, tc.check(err), "unexpected error type %T for status %d", err, tc.status)
			assert.Check(t, !IsErrConnectionFailed(err))
		})
	}
}

func TestNoContentStatusIsNotAnError(t *testing.T) {
	client, err := NewClientWithOpts(WithHTTPClient(newMockClient(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusNoContent,
			Body:       io.NopCloser(strings.NewReader(`{}`)),
			Request:    req,
		}, nil
	})))
	assert.NilError(t, err)

	_, err = client.List(context.Background(), &requesterListRequest)
	assert.NilError(t, err)
}

func TestConnectionFailed(t *testing.T) {
	client, err := NewClientWithOpts(WithHTTPClient(newMockClient(func(*http.Request) (*http.Response, error) {
		return nil, &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connect: connection refused")}
	})))
	assert.NilError(t, err)

	_, err = client.List(context.Background(), &requesterListRequest)
	assert.Check(t, IsErrConnectionFailed(err))
	assert.Check(t, is.Error(err, "cannot connect to the requester node at "+DefaultHost+"; is it running?"))
}

func TestConnectionTimeout(t *testing.T) {
	client, err := NewClientWithOpts(WithHTTPClient(newMockClient(func(*http.Request) (*http.Response, error) {
		return nil, &net.DNSError{Err: "i/o timeout", Name: "requester.invalid", IsTimeout: true}
	})))
	assert.NilError(t, err)

	_, err = client.List(context.Background(), &requesterListRequest)
	assert.Check(t, IsErrConnectionFailed(err))
	assert.Check(t, is.Error(err, "cannot connect to the requester node at "+DefaultHost+"; is it running?"))
}

func TestLookupErrorDecorated(t *testing.T) {
	client, err := NewClientWithOpts(WithHTTPClient(newMockClient(func(*http.Request) (*http.Response, error) {
		return nil, &net.DNSError{Err: "no such host", Name: "requester.invalid", IsNotFound: true}
	})))
	assert.NilError(t, err)

	_, err = client.List(context.Background(), &requesterListRequest)
	assert.Check(t, IsErrConnectionFailed(err))
	assert.Check(t, is.ErrorContains(err, "error during connect"))
	assert.Check(t, is.ErrorContains(err, "no such host"))
}

func TestConnectionErrorDecorated(t *testing.T) {
	client, err := NewClientWithOpts(WithHTTPClient(newMockClient(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("something went wrong")
	})))
	assert.NilError(t, err)

	_, err = client.List(context.Background(), &requesterListRequest)
	assert.Check(t, IsErrConnectionFailed(err))
	assert.Check(t, is.ErrorContains(err, "error during connect"))
	assert.Check(t, is.ErrorContains(err, "something went wrong"))
}

func TestContextErrorsAreNotDecorated(t *testing.T) {
	client, err := NewClientWithOpts(WithHTTPClient(newMockClient(func(req *http.Request) (*http.Response, error) {
		return nil, req.Context().Err()
	})))
	assert.NilError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.List(ctx, &requesterListRequest)
	assert.Check(t, is.ErrorIs(err, context.Canceled))
	assert.Check(t, !IsErrConnectionFailed(err))
}

func TestMalformedResponseBody(t *testing.T) {
	client, err := NewClientWithOpts(WithHTTPClient(newMockClient(mockJSONResponse(`{"jobs":`))))
	assert.NilError(t, err)

	_, err = client.List(context.Background(), &requesterListRequest)
	assert.Check(t, is.ErrorContains(err, "unexpected EOF"))
}

func TestPrepareJSONRequestNilPointer(t *testing.T) {
	var req *struct{}
	body, headers, err := prepareJSONRequest(req, nil)
	assert.NilError(t, err)
	assert.Check(t, is.Nil(body))
	assert.Check(t, is.Nil(headers))
}

func TestPrepareJSONRequestKeepsContentType(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/x-ndjson")
	_, headers, err := prepareJSONRequest(map[string]string{"a": "b"}, hdr)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(headers.Get("Content-Type"), "application/x-ndjson"))
}
