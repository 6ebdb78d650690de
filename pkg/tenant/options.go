package tenant

import (
	"errors"
	"log/slog"
	"net/http"
)

// ErrorHandler handles errors raised by the resolution pipeline.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// config holds middleware configuration.
type config struct {
	errorHandler ErrorHandler
	skipPaths    []string
	logger       *slog.Logger
}

// Option configures the middleware.
type Option func(*config)

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(c *config) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}

// WithSkipPaths sets path prefixes that bypass tenant resolution entirely.
func WithSkipPaths(paths ...string) Option {
	return func(c *config) {
		c.skipPaths = append(c.skipPaths, paths...)
	}
}

// WithLogger sets a logger for infrastructure-level lookup failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrTenantNotFound):
		http.Error(w, "Tenant not found", http.StatusNotFound)
	case errors.Is(err, ErrTenantInactive):
		http.Error(w, "Tenant account is inactive", http.StatusForbidden)
	case errors.Is(err, ErrIdentifierRequired):
		http.Error(w, "Tenant identifier is required", http.StatusBadRequest)
	case errors.Is(err, ErrNoTenantInContext):
		http.Error(w, "Tenant context required", http.StatusBadRequest)
	case errors.Is(err, ErrTenantAccessDenied):
		http.Error(w, "Access denied to this tenant", http.StatusForbidden)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
