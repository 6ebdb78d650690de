package tenant

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithTenant adds a resolved tenant to the context. The middleware calls
// this at most once per request; handlers only read.
func WithTenant(ctx context.Context, t *Tenant) context.Context {
	return context.WithValue(ctx, contextKey{}, t)
}

// FromContext retrieves the tenant from the context.
// Returns nil, false if no tenant was attached.
func FromContext(ctx context.Context) (*Tenant, bool) {
	t, ok := ctx.Value(contextKey{}).(*Tenant)
	return t, ok && t != nil
}

// IDFromContext retrieves just the tenant ID from the context.
func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	t, ok := FromContext(ctx)
	if !ok {
		return uuid.UUID{}, false
	}
	return t.ID, true
}

// MustFromContext retrieves the tenant from the context and panics if none
// was attached. Only for handlers mounted behind RequireTenant, where the
// gate has already guaranteed presence.
func MustFromContext(ctx context.Context) *Tenant {
	t, ok := FromContext(ctx)
	if !ok {
		panic("tenant: no tenant in context")
	}
	return t
}

// LoggerExtractor returns a logger context extractor that stamps every log
// record produced within a tenant-scoped request with the tenant ID.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IDFromContext(ctx); ok {
			return slog.String("tenant_id", id.String()), true
		}
		return slog.Attr{}, false
	}
}
