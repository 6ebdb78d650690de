package tenant_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grandpajoe1980/temple3/pkg/tenant"
)

func TestHeaderResolver(t *testing.T) {
	t.Parallel()

	t.Run("extracts identifier from header", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewHeaderResolver("X-Tenant-Subdomain")
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("X-Tenant-Subdomain", "first-community")

		id, err := resolver(req)
		require.NoError(t, err)
		assert.Equal(t, "first-community", id)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewHeaderResolver("X-Tenant-Subdomain")
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("X-Tenant-Subdomain", "  zen-garden  ")

		id, err := resolver(req)
		require.NoError(t, err)
		assert.Equal(t, "zen-garden", id)
	})

	t.Run("preserves identifier case", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewHeaderResolver("X-Tenant-Subdomain")
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("X-Tenant-Subdomain", "First-Community")

		id, err := resolver(req)
		require.NoError(t, err)
		assert.Equal(t, "First-Community", id)
	})

	t.Run("absent header yields no identifier", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewHeaderResolver("X-Tenant-Subdomain")
		req := httptest.NewRequest("GET", "/test", nil)

		id, err := resolver(req)
		require.NoError(t, err)
		assert.Empty(t, id)
	})

	t.Run("present but blank header is a client error", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewHeaderResolver("X-Tenant-Subdomain")
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("X-Tenant-Subdomain", "   ")

		_, err := resolver(req)
		assert.ErrorIs(t, err, tenant.ErrIdentifierRequired)
	})

	t.Run("defaults to X-Tenant-Id header", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewHeaderResolver("")
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("X-Tenant-Id", "abc-123")

		id, err := resolver(req)
		require.NoError(t, err)
		assert.Equal(t, "abc-123", id)
	})
}

func TestQueryResolver(t *testing.T) {
	t.Parallel()

	t.Run("extracts identifier from query parameter", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewQueryResolver("tenant")
		req := httptest.NewRequest("GET", "/test?tenant=zen-garden", nil)

		id, err := resolver(req)
		require.NoError(t, err)
		assert.Equal(t, "zen-garden", id)
	})

	t.Run("absent parameter yields no identifier", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewQueryResolver("tenant")
		req := httptest.NewRequest("GET", "/test?other=value", nil)

		id, err := resolver(req)
		require.NoError(t, err)
		assert.Empty(t, id)
	})

	t.Run("present but empty parameter is a client error", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewQueryResolver("tenant")
		req := httptest.NewRequest("GET", "/test?tenant=", nil)

		_, err := resolver(req)
		assert.ErrorIs(t, err, tenant.ErrIdentifierRequired)
	})
}

func TestRequestResolver(t *testing.T) {
	t.Parallel()

	t.Run("id header takes precedence over subdomain header", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewRequestResolver()
		req := httptest.NewRequest("GET", "/test?tenant=from-query", nil)
		req.Header.Set("X-Tenant-Id", "from-id-header")
		req.Header.Set("X-Tenant-Subdomain", "from-subdomain-header")

		id, err := resolver(req)
		require.NoError(t, err)
		assert.Equal(t, "from-id-header", id)
	})

	t.Run("subdomain header takes precedence over query", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewRequestResolver()
		req := httptest.NewRequest("GET", "/test?tenant=from-query", nil)
		req.Header.Set("X-Tenant-Subdomain", "from-subdomain-header")

		id, err := resolver(req)
		require.NoError(t, err)
		assert.Equal(t, "from-subdomain-header", id)
	})

	t.Run("falls back to query parameter", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewRequestResolver()
		req := httptest.NewRequest("GET", "/test?tenant=from-query", nil)

		id, err := resolver(req)
		require.NoError(t, err)
		assert.Equal(t, "from-query", id)
	})

	t.Run("no identifier in any source", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewRequestResolver()
		req := httptest.NewRequest("GET", "/test", nil)

		id, err := resolver(req)
		require.NoError(t, err)
		assert.Empty(t, id)
	})

	t.Run("blank high-precedence source is not papered over", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewRequestResolver()
		req := httptest.NewRequest("GET", "/test?tenant=from-query", nil)
		req.Header.Set("X-Tenant-Id", "  ")

		_, err := resolver(req)
		assert.ErrorIs(t, err, tenant.ErrIdentifierRequired)
	})
}
