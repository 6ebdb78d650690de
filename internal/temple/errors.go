package temple

import "errors"

var (
	// ErrSubdomainInvalidFormat is returned when the requested subdomain
	// contains anything beyond lowercase letters, digits, and hyphens.
	ErrSubdomainInvalidFormat = errors.New("invalid subdomain format")

	// ErrSubdomainTaken is returned when the requested subdomain already
	// belongs to another tenant, active or not. Uniqueness is permanent;
	// deactivation does not release a subdomain.
	ErrSubdomainTaken = errors.New("subdomain already taken")

	// ErrMissingRequiredFields is returned when a creation request omits
	// name, subdomain, or contact email.
	ErrMissingRequiredFields = errors.New("missing required fields")

	// ErrNoUpdatableFields is returned when an update request contains
	// no fields from the mutable allow-list.
	ErrNoUpdatableFields = errors.New("no valid fields to update")
)
