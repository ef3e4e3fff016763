package job

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"sync"

	"github.com/bacalhau-project/apiclient/cli/command"
	"github.com/bacalhau-project/apiclient/client"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

// outMu serializes raw output of calls running in parallel.
var outMu sync.Mutex

type callOptions struct {
	raw   map[string]string
	async bool
}

func (o *callOptions) installFlags(flags *pflag.FlagSet) {
	flags.StringToStringVar(&o.raw, "opt", nil, "Set a request option (async_req, _return_http_data_only, _preload_content, _request_timeout)")
	flags.BoolVar(&o.async, "async", false, "Run the request in the background and cancel it on interrupt")
}

type syncCall[T any] func(ctx context.Context, opts ...client.CallOption) (T, error)

type asyncCall[T any] func(ctx context.Context, opts ...client.CallOption) *client.Handle[T]

// execute runs a call with the options of the command. It reports true
// when the raw response body was copied to the output, in which case the
// returned value is not decoded.
func execute[T any](ctx context.Context, requesterCli command.Cli, o callOptions, call syncCall[T], acall asyncCall[T]) (T, bool, error) {
	var zero T
	raw, err := command.ParseCallOptions(requesterCli.ConfigFile(), o.raw)
	if err != nil {
		return zero, false, err
	}
	var info client.ResponseInfo
	opts := append(raw.Options, client.CaptureResponse(&info))

	var res T
	if o.async || raw.Async {
		res, err = wait(ctx, acall(ctx, opts...))
	} else {
		res, err = call(ctx, opts...)
	}
	outMu.Lock()
	defer outMu.Unlock()
	if raw.HTTPInfo && info.StatusCode != 0 {
		writeResponseInfo(requesterCli.Err(), info)
	}
	if err != nil {
		return zero, false, err
	}
	if info.Stream != nil {
		defer info.Stream.Close()
		_, err := io.Copy(requesterCli.Out(), info.Stream)
		return zero, true, err
	}
	return res, false, nil
}

// wait waits for h, cancelling the request on interrupt.
func wait[T any](ctx context.Context, h *client.Handle[T]) (T, error) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	res, err := h.Wait(ctx)
	if ctx.Err() != nil {
		h.Cancel()
	}
	return res, err
}

func writeResponseInfo(w io.Writer, info client.ResponseInfo) {
	fmt.Fprintf(w, "HTTP %d\n", info.StatusCode)
	keys := make([]string, 0, len(info.Header))
	for k := range info.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range info.Header[k] {
			fmt.Fprintf(w, "%s: %s\n", k, v)
		}
	}
	fmt.Fprintln(w)
}

// forEach calls fn for every job ID with bounded concurrency and returns
// the results in the order of ids.
func forEach[T any](ctx context.Context, ids []string, fn func(ctx context.Context, id string) (T, error)) ([]T, error) {
	results := make([]T, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			res, err := fn(ctx, id)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
