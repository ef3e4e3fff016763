package client

import (
	"errors"
	"fmt"
	"net/http"

	cerrdefs "github.com/containerd/errdefs"
)

// errConnectionFailed implements an error returned when connection failed.
type errConnectionFailed struct {
	error
}

// Error returns a string representation of an errConnectionFailed
func (e errConnectionFailed) Error() string {
	return e.error.Error()
}

func (e errConnectionFailed) Unwrap() error {
	return e.error
}

// IsErrConnectionFailed returns true if the error is caused by connection failed.
func IsErrConnectionFailed(err error) bool {
	return errors.As(err, &errConnectionFailed{})
}

// ErrorConnectionFailed returns an error with host in the error message when connection to the requester node failed.
func ErrorConnectionFailed(host string) error {
	return connectionFailed(host)
}

func connectionFailed(host string) error {
	var err error
	if host == "" {
		err = errors.New("cannot connect to the requester node; is it running?")
	} else {
		err = fmt.Errorf("cannot connect to the requester node at %s; is it running?", host)
	}
	return errConnectionFailed{error: err}
}

// missingRequiredArgument is returned when an operation is invoked without
// its required request body.
type missingRequiredArgument struct {
	param     string
	operation string
}

func (e missingRequiredArgument) Error() string {
	return fmt.Sprintf("missing the required parameter `%s` when calling `%s`", e.param, e.operation)
}

func (missingRequiredArgument) InvalidParameter() {}

func (missingRequiredArgument) Unwrap() error {
	return cerrdefs.ErrInvalidArgument
}

// IsMissingRequiredArgument reports whether err was caused by a call that
// omitted its required request.
func IsMissingRequiredArgument(err error) bool {
	return errors.As(err, &missingRequiredArgument{})
}

// unsupportedOption is returned for an execution option the client does not
// recognize.
type unsupportedOption struct {
	key       string
	operation string
}

func (e unsupportedOption) Error() string {
	if e.operation == "" {
		return fmt.Sprintf("got an unexpected option '%s'", e.key)
	}
	return fmt.Sprintf("got an unexpected option '%s' to method %s", e.key, e.operation)
}

func (unsupportedOption) NotImplemented() {}

func (unsupportedOption) Unwrap() error {
	return cerrdefs.ErrNotImplemented
}

// IsUnsupportedOption reports whether err was caused by an unknown execution
// option.
func IsUnsupportedOption(err error) bool {
	return errors.As(err, &unsupportedOption{})
}

type errInvalidParameter struct{ error }

func (errInvalidParameter) InvalidParameter() {}

func (e errInvalidParameter) Unwrap() []error {
	return []error{e.error, cerrdefs.ErrInvalidArgument}
}

func invalidParameter(format string, args ...any) error {
	return errInvalidParameter{fmt.Errorf(format, args...)}
}

type errNotFound struct{ error }

func (errNotFound) NotFound() {}

func (e errNotFound) Unwrap() []error {
	return []error{e.error, cerrdefs.ErrNotFound}
}

type errUnauthorized struct{ error }

func (errUnauthorized) Unauthorized() {}

func (e errUnauthorized) Unwrap() []error {
	return []error{e.error, cerrdefs.ErrUnauthenticated}
}

type errForbidden struct{ error }

func (errForbidden) Forbidden() {}

func (e errForbidden) Unwrap() []error {
	return []error{e.error, cerrdefs.ErrPermissionDenied}
}

type errConflict struct{ error }

func (errConflict) Conflict() {}

func (e errConflict) Unwrap() []error {
	return []error{e.error, cerrdefs.ErrConflict}
}

type errNotImplemented struct{ error }

func (errNotImplemented) NotImplemented() {}

func (e errNotImplemented) Unwrap() []error {
	return []error{e.error, cerrdefs.ErrNotImplemented}
}

type errUnavailable struct{ error }

func (errUnavailable) Unavailable() {}

func (e errUnavailable) Unwrap() []error {
	return []error{e.error, cerrdefs.ErrUnavailable}
}

type errSystem struct{ error }

func (errSystem) System() {}

func (e errSystem) Unwrap() []error {
	return []error{e.error, cerrdefs.ErrInternal}
}

type errUnknown struct{ error }

func (errUnknown) Unknown() {}

func (e errUnknown) Unwrap() []error {
	return []error{e.error, cerrdefs.ErrUnknown}
}

// httpErrorFromStatusCode classifies err by the status code of the response
// it was read from.
func httpErrorFromStatusCode(err error, statusCode int) error {
	if err == nil {
		return nil
	}
	switch statusCode {
	case http.StatusBadRequest:
		return errInvalidParameter{err}
	case http.StatusUnauthorized:
		return errUnauthorized{err}
	case http.StatusForbidden:
		return errForbidden{err}
	case http.StatusNotFound:
		return errNotFound{err}
	case http.StatusConflict:
		return errConflict{err}
	case http.StatusNotImplemented:
		return errNotImplemented{err}
	case http.StatusServiceUnavailable:
		return errUnavailable{err}
	default:
		if statusCode >= http.StatusInternalServerError {
			return errSystem{err}
		}
		return errUnknown{err}
	}
}
