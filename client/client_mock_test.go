package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// newMockClient returns an HTTP client whose transport is doer.
func newMockClient(doer func(*http.Request) (*http.Response, error)) *http.Client {
	return &http.Client{
		Transport: testRoundTripper(doer),
	}
}

// errorMock returns a JSON error response with the given status.
func errorMock(statusCode int, message string) func(req *http.Request) (*http.Response, error) {
	return func(req *http.Request) (*http.Response, error) {
		header := http.Header{}
		header.Set("Content-Type", "application/json")

		body, err := json.Marshal(&errorResponse{
			Message: message,
		})
		if err != nil {
			return nil, err
		}

		return &http.Response{
			StatusCode: statusCode,
			Body:       io.NopCloser(bytes.NewReader(body)),
			Header:     header,
			Request:    req,
		}, nil
	}
}

// plainTextErrorMock returns a text/plain error response with the given status.
func plainTextErrorMock(statusCode int, message string) func(req *http.Request) (*http.Response, error) {
	return func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: statusCode,
			Body:       io.NopCloser(bytes.NewReader([]byte(message))),
			Request:    req,
		}, nil
	}
}

// mockJSONResponse returns a 200 response carrying body as JSON.
func mockJSONResponse(body string) func(req *http.Request) (*http.Response, error) {
	return func(req *http.Request) (*http.Response, error) {
		header := http.Header{}
		header.Set("Content-Type", "application/json")
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     header,
			Request:    req,
		}, nil
	}
}

// requestCounter counts the requests that reach the transport.
type requestCounter struct {
	n    int
	next func(*http.Request) (*http.Response, error)
}

func (c *requestCounter) do(req *http.Request) (*http.Response, error) {
	c.n++
	return c.next(req)
}

// contextReader fails reads once ctx is done, as a body read from a
// cancelled request does.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// mockStreamResponse returns a 200 response whose body is size bytes, read
// under the request context.
func mockStreamResponse(size int) func(req *http.Request) (*http.Response, error) {
	return func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(&contextReader{ctx: req.Context(), r: bytes.NewReader(make([]byte, size))}),
			Header:     http.Header{},
			Request:    req,
		}, nil
	}
}
