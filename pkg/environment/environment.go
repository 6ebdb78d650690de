// Package environment carries the deployment environment through
// request contexts so behavior and log output can vary between
// development and production without plumbing a flag everywhere.
package environment

import (
	"context"
	"log/slog"
	"net/http"
)

// Environment names a deployment target.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

type contextKey struct{}

// WithContext stores the environment in the context.
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env)
}

// FromContext returns the environment or "" when absent.
func FromContext(ctx context.Context) Environment {
	env, _ := ctx.Value(contextKey{}).(Environment)
	return env
}

// IsProduction reports whether the context carries the production
// environment.
func IsProduction(ctx context.Context) bool {
	env := FromContext(ctx)
	return env == Production || env == "prod"
}

// Middleware attaches env to every request context.
func Middleware(env Environment) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), env)))
		})
	}
}

// LoggerExtractor returns a logger context extractor stamping log
// records with the environment name.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if env := FromContext(ctx); env != "" {
			return slog.String("env", string(env)), true
		}
		return slog.Attr{}, false
	}
}
