package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when no tenant matches the identifier.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrTenantInactive is returned when the identifier matched a tenant
	// whose account has been deactivated. Deliberately distinct from
	// ErrTenantNotFound: the tenant exists, access to it is forbidden.
	ErrTenantInactive = errors.New("tenant account is inactive")

	// ErrIdentifierRequired is returned when an identifier source (header
	// or query parameter) is present but empty after trimming.
	ErrIdentifierRequired = errors.New("tenant identifier is required")

	// ErrNoTenantInContext is returned by the presence gate when a route
	// requires a resolved tenant and none was attached.
	ErrNoTenantInContext = errors.New("tenant context required")

	// ErrTenantAccessDenied is returned when an authenticated principal's
	// tenant affiliation does not match the resolved tenant.
	ErrTenantAccessDenied = errors.New("access denied to this tenant")
)
