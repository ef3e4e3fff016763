package client

import (
	"context"
	"sync"
)

// Handle is a call running in the background. It resolves to the decoded
// response of the call, or to the error that ended it.
type Handle[T any] struct {
	done   chan struct{}
	cancel context.CancelFunc

	mu       sync.Mutex
	finished bool
	result   T
	err      error
}

// goAsync runs fn on its own goroutine. fn receives the release func of
// its context and reports whether it passed it on (to a streamed body, for
// instance); otherwise the context is released once fn returns.
func goAsync[T any](ctx context.Context, fn func(ctx context.Context, release context.CancelFunc) (T, bool, error)) *Handle[T] {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle[T]{
		done:   make(chan struct{}),
		cancel: cancel,
	}
	go func() {
		res, handedOver, err := fn(ctx, cancel)
		if !h.resolve(res, err) || !handedOver {
			cancel()
		}
	}()
	return h
}

func failedHandle[T any](err error) *Handle[T] {
	h := &Handle[T]{
		done:   make(chan struct{}),
		cancel: func() {},
	}
	var zero T
	h.resolve(zero, err)
	return h
}

// resolve records the outcome unless the handle already finished.
func (h *Handle[T]) resolve(res T, err error) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.finished {
		return false
	}
	h.finished = true
	h.result, h.err = res, err
	close(h.done)
	return true
}

// Done returns a channel that is closed when the call completes or is
// cancelled.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the call completes or ctx is done. After [Handle.Cancel]
// it returns [context.Canceled].
func (h *Handle[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-h.done:
		h.mu.Lock()
		defer h.mu.Unlock()
		return h.result, h.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Cancel aborts the call. The in-flight request is cancelled and the
// response, if one arrives, is discarded. Cancel is a no-op once the call
// has completed.
func (h *Handle[T]) Cancel() {
	var zero T
	if h.resolve(zero, context.Canceled) {
		h.cancel()
	}
}
