package jwt

import (
	"context"
	"log/slog"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey struct{ name string }

var claimsContextKey = &contextKey{name: "jwt_claims"}

// WithClaims stores validated claims in the context.
func WithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext retrieves validated claims from the context.
// Returns false if the request was not authenticated.
func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(Claims)
	return claims, ok
}

// LoggerExtractor returns a logger context extractor that stamps every log
// record produced within an authenticated request with the user ID.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if claims, ok := ClaimsFromContext(ctx); ok {
			return slog.String("user_id", claims.UserID.String()), true
		}
		return slog.Attr{}, false
	}
}
