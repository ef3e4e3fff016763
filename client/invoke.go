package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/containerd/log"
)

// call is a validated operation, ready to be sent.
type call struct {
	ep      Endpoint
	body    any
	headers http.Header
	opts    CallOptions
}

// prepare applies opts and checks the request of ep. It performs no I/O.
func prepare[Req any](cli *Client, ep Endpoint, req *Req, opts []CallOption) (*call, error) {
	o, err := applyCallOptions(ep, opts)
	if err != nil {
		return nil, err
	}
	if ep.Param != "" && req == nil && !cli.skipValidation {
		return nil, missingRequiredArgument{param: ep.Param, operation: ep.Name}
	}

	headers := http.Header{}
	if accept := selectHeaderAccept(ep.Accept); accept != "" {
		headers.Set("Accept", accept)
	}
	c := &call{ep: ep, headers: headers, opts: o}
	if ep.Param != "" && req != nil {
		headers.Set("Content-Type", selectHeaderContentType(ep.ContentType))
		c.body = req
	}
	return c, nil
}

// invoke sends one request for ep and decodes the response into a Resp.
// Errors from the transport are returned as they are.
func invoke[Req, Resp any](ctx context.Context, cli *Client, ep Endpoint, req *Req, opts []CallOption) (Resp, error) {
	c, err := prepare(cli, ep, req, opts)
	if err != nil {
		var zero Resp
		return zero, err
	}
	out, _, err := do[Resp](ctx, cli, c, nil)
	return out, err
}

// invokeAsync is the asynchronous form of invoke. Option and argument
// errors resolve the returned handle immediately.
func invokeAsync[Req, Resp any](ctx context.Context, cli *Client, ep Endpoint, req *Req, opts []CallOption) *Handle[Resp] {
	c, err := prepare(cli, ep, req, opts)
	if err != nil {
		return failedHandle[Resp](err)
	}
	return goAsync(ctx, func(ctx context.Context, release context.CancelFunc) (Resp, bool, error) {
		return do[Resp](ctx, cli, c, release)
	})
}

// do sends c. When the body is handed over through [ResponseInfo.Stream],
// closing the stream releases the request context and calls release, and
// do reports true.
func do[Resp any](ctx context.Context, cli *Client, c *call, release context.CancelFunc) (Resp, bool, error) {
	var out Resp

	cancel := func() {}
	if c.opts.RequestTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, c.opts.RequestTimeout)
	}
	handedOver := false
	defer func() {
		if !handedOver {
			cancel()
		}
	}()

	logger := log.G(ctx).WithFields(log.Fields{
		"operation": c.ep.Name,
		"method":    c.ep.Method,
		"path":      c.ep.Path,
	})
	logger.Debug("sending request")

	start := time.Now()
	var resp *http.Response
	var err error
	if c.ep.Method == http.MethodGet {
		resp, err = cli.get(ctx, c.ep.Path, nil, c.headers)
	} else {
		resp, err = cli.post(ctx, c.ep.Path, nil, c.body, c.headers)
	}
	cli.metrics.observe(c.ep.Name, resp, err, time.Since(start))
	if info := c.opts.Response; info != nil && resp != nil {
		info.StatusCode = resp.StatusCode
		info.Header = resp.Header.Clone()
	}
	if err != nil {
		logger.WithError(err).Debug("request failed")
		ensureReaderClosed(resp)
		return out, false, err
	}
	logger.WithField("status", resp.StatusCode).Debug("received response")

	if c.opts.NoPreload {
		if info := c.opts.Response; info != nil {
			stop := cancel
			if release != nil {
				stop = func() {
					cancel()
					release()
				}
			}
			info.Stream = &cancelReadCloser{ReadCloser: resp.Body, cancel: stop}
			handedOver = true
			return out, true, nil
		}
		ensureReaderClosed(resp)
		return out, false, nil
	}
	defer ensureReaderClosed(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, false, err
	}
	if info := c.opts.Response; info != nil {
		info.Body = body
	}
	if c.opts.MetadataOnly {
		return out, false, nil
	}
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&out); err != nil {
		return out, false, err
	}
	return out, false, nil
}

// cancelReadCloser releases the call's context when the body is closed.
type cancelReadCloser struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (r *cancelReadCloser) Close() error {
	err := r.ReadCloser.Close()
	r.cancel()
	return err
}
