package tenant

import (
	"net/http"
	"strings"
)

// Default identifier sources, checked in this precedence order by
// NewRequestResolver.
const (
	HeaderTenantID        = "X-Tenant-Id"
	HeaderTenantSubdomain = "X-Tenant-Subdomain"
	QueryParamTenant      = "tenant"
)

// Resolver extracts a tenant identifier from an HTTP request.
// Returns empty string when the request carries no identifier at all;
// returns ErrIdentifierRequired when an identifier source is present but
// blank after trimming. The two cases are distinct on purpose: the first
// defers to the presence gate, the second is a malformed request.
type Resolver func(r *http.Request) (string, error)

// NewHeaderResolver extracts the tenant identifier from an HTTP header.
func NewHeaderResolver(headerName string) Resolver {
	if headerName == "" {
		headerName = HeaderTenantID
	}

	return func(r *http.Request) (string, error) {
		values := r.Header.Values(headerName)
		if len(values) == 0 {
			return "", nil
		}
		return normalize(values[0])
	}
}

// NewQueryResolver extracts the tenant identifier from a query parameter.
func NewQueryResolver(param string) Resolver {
	if param == "" {
		param = QueryParamTenant
	}

	return func(r *http.Request) (string, error) {
		q := r.URL.Query()
		if !q.Has(param) {
			return "", nil
		}
		return normalize(q.Get(param))
	}
}

// NewCompositeResolver tries each resolver in order, returning the first
// non-empty identifier. A resolver error stops the chain immediately: a
// present-but-blank identifier in a higher-precedence source must not be
// papered over by a lower-precedence one.
func NewCompositeResolver(resolvers ...Resolver) Resolver {
	return func(r *http.Request) (string, error) {
		for _, resolve := range resolvers {
			id, err := resolve(r)
			if err != nil {
				return "", err
			}
			if id != "" {
				return id, nil
			}
		}
		return "", nil
	}
}

// NewRequestResolver returns the platform's standard identifier chain:
// X-Tenant-Id header, then X-Tenant-Subdomain header, then the "tenant"
// query parameter.
func NewRequestResolver() Resolver {
	return NewCompositeResolver(
		NewHeaderResolver(HeaderTenantID),
		NewHeaderResolver(HeaderTenantSubdomain),
		NewQueryResolver(QueryParamTenant),
	)
}

// normalize trims the raw value. The value keeps its original case: the
// provider lookup is case-insensitive where it needs to be (subdomain,
// domain) and verbatim where it must be (ID).
func normalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrIdentifierRequired
	}
	return trimmed, nil
}
