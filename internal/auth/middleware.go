package auth

import (
	"net/http"

	"github.com/grandpajoe1980/temple3/pkg/jwt"
	"github.com/grandpajoe1980/temple3/pkg/tenant"
)

// RequireMembership rejects requests whose verified session claims do
// not belong to the tenant resolved for this request. It must run after
// both the tenant middleware and the token middleware; a valid token
// issued under tenant A presented with tenant B's identifier fails
// here, never reaching the handler.
func RequireMembership(errorHandler func(http.ResponseWriter, *http.Request, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t, ok := tenant.FromContext(r.Context())
			if !ok {
				errorHandler(w, r, tenant.ErrNoTenantInContext)
				return
			}

			claims, ok := jwt.ClaimsFromContext(r.Context())
			if !ok || claims.TenantID != t.ID {
				errorHandler(w, r, tenant.ErrTenantAccessDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
