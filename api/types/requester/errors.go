package requester

import (
	cerrdefs "github.com/containerd/errdefs"
)

type errInvalidParameter struct{ error }

func (e errInvalidParameter) InvalidParameter() {}

func (e errInvalidParameter) Unwrap() []error {
	return []error{e.error, cerrdefs.ErrInvalidArgument}
}
