package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Tenant represents a temple community in the catalog. One row per
// community; all user-facing resources hang off the tenant ID.
type Tenant struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Subdomain    string    `json:"subdomain"`
	Domain       string    `json:"domain,omitempty"`
	ContactEmail string    `json:"contact_email"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`

	City          string `json:"city,omitempty"`
	StateProvince string `json:"state_province,omitempty"`
	Country       string `json:"country,omitempty"`
	PostalCode    string `json:"postal_code,omitempty"`
	Timezone      string `json:"timezone,omitempty"`

	// Discovery facets. Scalar facets are stored lowercased so equality
	// filters can compare directly.
	Religion     string `json:"religion,omitempty"`
	Tradition    string `json:"tradition,omitempty"`
	Denomination string `json:"denomination,omitempty"`
	Sect         string `json:"sect,omitempty"`
	SizeCategory string `json:"size_category,omitempty"`

	AverageWeeklyAttendance *int `json:"average_weekly_attendance,omitempty"`
	FoundedYear             *int `json:"founded_year,omitempty"`

	Languages []string `json:"languages,omitempty"`
	Tags      []string `json:"tags,omitempty"`

	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Provider loads tenant records from a data source.
type Provider interface {
	// GetByIdentifier retrieves a tenant by any of its unique identifiers:
	// the ID (matched verbatim), the subdomain, or the custom domain (both
	// matched case-insensitively). Uniqueness constraints on all three
	// fields guarantee at most one match.
	//
	// When includeInactive is false, deactivated tenants are treated as
	// missing. The middleware always passes true so it can tell an
	// inactive tenant apart from an unknown one; internal existence
	// checks (such as subdomain uniqueness) also pass true because
	// uniqueness is not reclaimable by deactivation.
	//
	// Returns ErrTenantNotFound if no tenant matches.
	GetByIdentifier(ctx context.Context, identifier string, includeInactive bool) (*Tenant, error)
}
