// Package tenant provides the tenant resolution and isolation layer for
// the multi-tenant platform.
//
// Every tenant-scoped request passes through a fixed pipeline: an
// identifier is extracted from the request (X-Tenant-Id header,
// X-Tenant-Subdomain header, or the "tenant" query parameter, in that
// precedence), resolved against the catalog by ID, subdomain, or custom
// domain, gated on the tenant's activation state, and attached to the
// request context for downstream handlers.
//
// Resolution is deliberately split from requirement. The middleware
// passes requests without any identifier through untouched, so routes
// that are legitimately tenant-free (tenant creation, public discovery)
// share the pipeline with tenant-scoped routes, which declare their
// requirement with RequireTenant.
//
// Basic usage:
//
//	provider := temple.NewRepository(pool) // implements tenant.Provider
//
//	r := chi.NewRouter()
//	r.Use(tenant.Middleware(tenant.NewRequestResolver(), provider))
//
//	r.Route("/api/tenant", func(r chi.Router) {
//		r.Use(tenant.RequireTenant(nil))
//		r.Get("/", getTenantHandler)
//	})
//
// Handlers behind RequireTenant read the resolved record with
// tenant.MustFromContext(ctx); everything else uses the checked
// tenant.FromContext(ctx) form.
//
// Error cases are modeled as sentinel errors (ErrTenantNotFound,
// ErrTenantInactive, ErrIdentifierRequired, ErrNoTenantInContext,
// ErrTenantAccessDenied) so callers discriminate with errors.Is, never
// by matching message strings. Not-found and inactive are distinct
// outcomes: a deactivated tenant exists and resolves, but is forbidden.
package tenant
