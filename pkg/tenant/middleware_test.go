package tenant_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grandpajoe1980/temple3/pkg/tenant"
)

// fakeProvider serves a fixed set of tenants keyed by ID, subdomain, and
// domain, mimicking the catalog's case-insensitive lookup semantics.
type fakeProvider struct {
	tenants []*tenant.Tenant
	err     error
	calls   int
}

func (p *fakeProvider) GetByIdentifier(_ context.Context, identifier string, includeInactive bool) (*tenant.Tenant, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	lowered := strings.ToLower(identifier)
	for _, t := range p.tenants {
		if t.ID.String() == identifier ||
			strings.ToLower(t.Subdomain) == lowered ||
			(t.Domain != "" && strings.ToLower(t.Domain) == lowered) {
			if !includeInactive && !t.Active {
				return nil, tenant.ErrTenantNotFound
			}
			return t, nil
		}
	}
	return nil, tenant.ErrTenantNotFound
}

func newTestTenant(subdomain string, active bool) *tenant.Tenant {
	return &tenant.Tenant{
		ID:        uuid.New(),
		Name:      "Test Temple",
		Subdomain: subdomain,
		Active:    active,
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("attaches resolved tenant to context", func(t *testing.T) {
		t.Parallel()

		want := newTestTenant("first-community", true)
		provider := &fakeProvider{tenants: []*tenant.Tenant{want}}

		var got *tenant.Tenant
		handler := tenant.Middleware(tenant.NewRequestResolver(), provider)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, _ = tenant.FromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("X-Tenant-Subdomain", "first-community")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, got)
		assert.Equal(t, want.ID, got.ID)
	})

	t.Run("resolution is case-insensitive on subdomain", func(t *testing.T) {
		t.Parallel()

		want := newTestTenant("First-Community", true)
		provider := &fakeProvider{tenants: []*tenant.Tenant{want}}

		for _, identifier := range []string{"first-community", "FIRST-COMMUNITY", "First-Community"} {
			var got *tenant.Tenant
			handler := tenant.Middleware(tenant.NewRequestResolver(), provider)(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					got, _ = tenant.FromContext(r.Context())
				}))

			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set("X-Tenant-Subdomain", identifier)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.NotNil(t, got, "identifier %q", identifier)
			assert.Equal(t, want.ID, got.ID, "identifier %q", identifier)
		}
	})

	t.Run("passes through when no identifier supplied", func(t *testing.T) {
		t.Parallel()

		provider := &fakeProvider{}
		handler := tenant.Middleware(tenant.NewRequestResolver(), provider)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, ok := tenant.FromContext(r.Context())
				assert.False(t, ok)
				w.WriteHeader(http.StatusOK)
			}))

		req := httptest.NewRequest("GET", "/test", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, provider.calls, "no lookup without an identifier")
	})

	t.Run("unknown identifier yields not found", func(t *testing.T) {
		t.Parallel()

		provider := &fakeProvider{}
		handler := tenant.Middleware(tenant.NewRequestResolver(), provider)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run")
			}))

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("X-Tenant-Subdomain", "no-such-temple")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("inactive tenant is forbidden, not not-found", func(t *testing.T) {
		t.Parallel()

		provider := &fakeProvider{tenants: []*tenant.Tenant{newTestTenant("suspended", false)}}
		handler := tenant.Middleware(tenant.NewRequestResolver(), provider)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run")
			}))

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("X-Tenant-Subdomain", "suspended")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("blank identifier is a bad request", func(t *testing.T) {
		t.Parallel()

		provider := &fakeProvider{}
		handler := tenant.Middleware(tenant.NewRequestResolver(), provider)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run")
			}))

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("X-Tenant-Subdomain", "   ")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, provider.calls)
	})

	t.Run("provider failure surfaces as internal error", func(t *testing.T) {
		t.Parallel()

		provider := &fakeProvider{err: errors.New("connection refused")}
		handler := tenant.Middleware(tenant.NewRequestResolver(), provider)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run")
			}))

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("X-Tenant-Subdomain", "first-community")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})

	t.Run("skip paths bypass resolution", func(t *testing.T) {
		t.Parallel()

		provider := &fakeProvider{}
		handler := tenant.Middleware(tenant.NewRequestResolver(), provider,
			tenant.WithSkipPaths("/health"))(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

		req := httptest.NewRequest("GET", "/health", nil)
		req.Header.Set("X-Tenant-Subdomain", "ignored")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, provider.calls)
	})

	t.Run("custom error handler receives sentinel errors", func(t *testing.T) {
		t.Parallel()

		provider := &fakeProvider{tenants: []*tenant.Tenant{newTestTenant("suspended", false)}}

		var handled error
		handler := tenant.Middleware(tenant.NewRequestResolver(), provider,
			tenant.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
				handled = err
				w.WriteHeader(http.StatusTeapot)
			}))(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("X-Tenant-Subdomain", "suspended")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.ErrorIs(t, handled, tenant.ErrTenantInactive)
	})
}

func TestRequireTenant(t *testing.T) {
	t.Parallel()

	t.Run("rejects request without tenant context", func(t *testing.T) {
		t.Parallel()

		handler := tenant.RequireTenant(nil)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run")
			}))

		req := httptest.NewRequest("GET", "/test", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("passes request with tenant context", func(t *testing.T) {
		t.Parallel()

		handler := tenant.RequireTenant(nil)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

		req := httptest.NewRequest("GET", "/test", nil)
		ctx := tenant.WithTenant(req.Context(), newTestTenant("present", true))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("full pipeline with presence gate", func(t *testing.T) {
		t.Parallel()

		want := newTestTenant("zen-garden", true)
		provider := &fakeProvider{tenants: []*tenant.Tenant{want}}

		mux := http.NewServeMux()
		mux.Handle("/api/tenant", tenant.RequireTenant(nil)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got := tenant.MustFromContext(r.Context())
				assert.Equal(t, want.ID, got.ID)
				w.WriteHeader(http.StatusOK)
			})))
		handler := tenant.Middleware(tenant.NewRequestResolver(), provider)(mux)

		// Tenant-required route without identifier fails at the gate.
		req := httptest.NewRequest("GET", "/api/tenant", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		// Same route with identifier succeeds.
		req = httptest.NewRequest("GET", "/api/tenant", nil)
		req.Header.Set("X-Tenant-Subdomain", "ZEN-GARDEN")
		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
