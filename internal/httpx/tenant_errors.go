package httpx

import (
	"errors"
	"net/http"

	"github.com/grandpajoe1980/temple3/pkg/tenant"
)

// TenantErrorHandler maps tenant pipeline errors to the API's typed
// error responses. Passed to tenant.Middleware and tenant.RequireTenant
// so gate failures share one envelope shape with the rest of the API.
func TenantErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, tenant.ErrTenantNotFound):
		Error(w, http.StatusNotFound, CodeTenantNotFound, "Tenant not found")
	case errors.Is(err, tenant.ErrTenantInactive):
		Error(w, http.StatusForbidden, CodeTenantInactive, "Tenant account is inactive")
	case errors.Is(err, tenant.ErrIdentifierRequired):
		Error(w, http.StatusBadRequest, CodeTenantIdentifierMissing, "Tenant identifier is required")
	case errors.Is(err, tenant.ErrNoTenantInContext):
		Error(w, http.StatusBadRequest, CodeTenantRequired, "Tenant context required")
	case errors.Is(err, tenant.ErrTenantAccessDenied):
		Error(w, http.StatusForbidden, CodeTenantAccessDenied, "Access denied to this tenant")
	default:
		Internal(w)
	}
}
