package httpserver

import "errors"

var (
	// ErrStart is returned when the listener cannot be started.
	ErrStart = errors.New("failed to start HTTP server")
	// ErrShutdown is returned when graceful shutdown does not complete in time.
	ErrShutdown = errors.New("failed to shutdown HTTP server gracefully")
)
