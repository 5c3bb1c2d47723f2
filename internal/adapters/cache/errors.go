package cache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"

	"hazard-curve-service/internal/ports"
)

// isConnectionError reports transport-level failures: the store could not be
// reached or dropped the connection mid-operation.
func isConnectionError(err error) bool {
	switch {
	case errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, net.ErrClosed),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.EPIPE):
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// classify wraps a backend error with the taxonomy sentinel that matches it.
// Context cancellation is passed through unclassified.
func classify(backend, op, key string, err error, connFailure func(error) bool) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s %s key=%q: %w", backend, op, key, err)
	}

	kind := ports.ErrStorage
	if isConnectionError(err) || (connFailure != nil && connFailure(err)) {
		kind = ports.ErrConnection
	}
	return fmt.Errorf("%s %s key=%q: %w: %w", backend, op, key, kind, err)
}
