package client

import (
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Raw option keys accepted by [ParseCallOptions] and [WithRawOptions].
const (
	OptionAsync              = "async_req"
	OptionReturnHTTPDataOnly = "_return_http_data_only"
	OptionPreloadContent     = "_preload_content"
	OptionRequestTimeout     = "_request_timeout"
)

// CallOptions holds the execution options of a single call.
type CallOptions struct {
	// RequestTimeout, when non-zero, bounds the call.
	RequestTimeout time.Duration
	// MetadataOnly disables decoding of the response body.
	MetadataOnly bool
	// NoPreload leaves the response body unread.
	NoPreload bool
	// Response receives the transport metadata of the call.
	Response *ResponseInfo
}

// CallOption configures a single call.
type CallOption func(*CallOptions) error

// ResponseInfo is the transport-level outcome of a call.
type ResponseInfo struct {
	StatusCode int
	Header     http.Header
	// Body holds the raw response body when it was preloaded.
	Body []byte
	// Stream is the live response body of a call made with [WithoutPreload].
	// The caller must close it.
	Stream io.ReadCloser
}

// WithMetadataOnly skips decoding of the response body. The status and
// headers remain available through [CaptureResponse].
func WithMetadataOnly() CallOption {
	return func(o *CallOptions) error {
		o.MetadataOnly = true
		return nil
	}
}

// WithoutPreload leaves the response body unread. When combined with
// [CaptureResponse] the body is handed over in [ResponseInfo.Stream];
// otherwise it is discarded.
func WithoutPreload() CallOption {
	return func(o *CallOptions) error {
		o.NoPreload = true
		return nil
	}
}

// WithRequestTimeout bounds the call to d, overriding the client timeout
// when shorter.
func WithRequestTimeout(d time.Duration) CallOption {
	return func(o *CallOptions) error {
		if d < 0 {
			return invalidParameter("invalid request timeout: %s", d)
		}
		o.RequestTimeout = d
		return nil
	}
}

// CaptureResponse stores the status code, headers and raw body of the
// response in info.
func CaptureResponse(info *ResponseInfo) CallOption {
	return func(o *CallOptions) error {
		o.Response = info
		return nil
	}
}

// RawOptions is the result of parsing an option bag.
type RawOptions struct {
	// Async is set when async_req was true; the caller picks the Async
	// variant of the operation accordingly.
	Async bool
	// HTTPInfo is set when _return_http_data_only was false; the caller
	// should capture the response metadata.
	HTTPInfo bool
	Options  []CallOption
}

// ParseCallOptions converts a string-keyed option bag into call options.
// Recognized keys are async_req, _return_http_data_only, _preload_content
// and _request_timeout; any other key fails with an unsupported-option
// error. Timeouts accept a Go duration or a number of seconds.
func ParseCallOptions(m map[string]string) (RawOptions, error) {
	var out RawOptions
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := strings.TrimSpace(m[k])
		switch k {
		case OptionAsync:
			b, err := parseBoolOption(k, v)
			if err != nil {
				return RawOptions{}, err
			}
			out.Async = b
		case OptionReturnHTTPDataOnly:
			b, err := parseBoolOption(k, v)
			if err != nil {
				return RawOptions{}, err
			}
			out.HTTPInfo = !b
		case OptionPreloadContent:
			b, err := parseBoolOption(k, v)
			if err != nil {
				return RawOptions{}, err
			}
			if !b {
				out.Options = append(out.Options, WithoutPreload())
			}
		case OptionRequestTimeout:
			d, err := parseTimeoutOption(v)
			if err != nil {
				return RawOptions{}, err
			}
			out.Options = append(out.Options, WithRequestTimeout(d))
		default:
			return RawOptions{}, unsupportedOption{key: k}
		}
	}
	return out, nil
}

// WithRawOptions applies a string-keyed option bag to the call; see
// [ParseCallOptions]. The execution mode requested by async_req is chosen
// by calling the Async variant of an operation and is not applied here.
func WithRawOptions(m map[string]string) CallOption {
	return func(o *CallOptions) error {
		raw, err := ParseCallOptions(m)
		if err != nil {
			return err
		}
		for _, opt := range raw.Options {
			if err := opt(o); err != nil {
				return err
			}
		}
		return nil
	}
}

func parseBoolOption(key, v string) (bool, error) {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, invalidParameter("invalid value for option %s: %q is not a boolean", key, v)
	}
	return b, nil
}

func parseTimeoutOption(v string) (time.Duration, error) {
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		if secs < 0 {
			return 0, invalidParameter("invalid value for option %s: %q", OptionRequestTimeout, v)
		}
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, invalidParameter("invalid value for option %s: %q", OptionRequestTimeout, v)
	}
	return d, nil
}

func applyCallOptions(ep Endpoint, opts []CallOption) (CallOptions, error) {
	var o CallOptions
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&o); err != nil {
			if u, ok := err.(unsupportedOption); ok {
				u.operation = ep.Name
				return CallOptions{}, u
			}
			return CallOptions{}, err
		}
	}
	return o, nil
}
