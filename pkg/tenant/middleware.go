package tenant

import (
	"errors"
	"net/http"
	"strings"
)

// Middleware creates HTTP middleware that resolves the tenant identifier
// from incoming requests, loads the tenant, gates on activation, and
// attaches the record to the request context.
//
// Requests without any identifier pass through untouched; routes that
// require a tenant declare it with RequireTenant. The stage order is
// fixed: resolve identifier, load record, activation gate, attach. A
// failure at any stage terminates the request.
func Middleware(resolver Resolver, provider Provider, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		errorHandler: defaultErrorHandler,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			identifier, err := resolver(r)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}

			// No identifier at all: tenant-optional route territory.
			// RequireTenant decides downstream whether that is fatal.
			if identifier == "" {
				next.ServeHTTP(w, r)
				return
			}

			// Load including inactive rows. The activation gate below
			// must distinguish "deactivated" from "unknown"; a filtered
			// lookup would collapse both into not-found.
			t, err := provider.GetByIdentifier(r.Context(), identifier, true)
			if err != nil {
				if cfg.logger != nil && !errors.Is(err, ErrTenantNotFound) {
					cfg.logger.ErrorContext(r.Context(), "tenant lookup failed",
						"identifier", identifier, "error", err)
				}
				cfg.errorHandler(w, r, err)
				return
			}

			if !t.Active {
				cfg.errorHandler(w, r, ErrTenantInactive)
				return
			}

			ctx := WithTenant(r.Context(), t)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireTenant creates middleware that ensures a tenant was attached for
// this request. Kept separate from Middleware so the same resolution
// pipeline serves tenant-optional routes (tenant creation, discovery)
// and tenant-required routes without duplicating lookup logic.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := FromContext(r.Context()); !ok {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
