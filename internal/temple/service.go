package temple

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/grandpajoe1980/temple3/pkg/pg"
	"github.com/grandpajoe1980/temple3/pkg/tenant"
)

// subdomainPattern validates creation-time subdomains: lowercase
// letters, digits, and hyphens only. Input is lowercased first, so the
// pattern never sees uppercase.
var subdomainPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Store is the catalog persistence surface the service needs.
// *Repository satisfies it; tests substitute a fake.
type Store interface {
	GetByIdentifier(ctx context.Context, identifier string, includeInactive bool) (*tenant.Tenant, error)
	Insert(ctx context.Context, t *tenant.Tenant) (*tenant.Tenant, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]string) (*tenant.Tenant, error)
	Search(ctx context.Context, q SearchQuery) (*SearchResult, error)
}

// Service implements catalog operations: creation behind the subdomain
// uniqueness guard, allow-listed updates, and discovery search.
type Service struct {
	store Store
	log   *slog.Logger
}

func NewService(store Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

// CreateInput carries the raw creation request fields. Strings are
// trimmed, categorical facets lowercased, numerics parsed-or-null, and
// array fields split-and-trimmed during normalization.
type CreateInput struct {
	Name         string `json:"name"`
	Subdomain    string `json:"subdomain"`
	Domain       string `json:"domain"`
	ContactEmail string `json:"contact_email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`

	City          string `json:"city"`
	StateProvince string `json:"state_province"`
	Country       string `json:"country"`
	PostalCode    string `json:"postal_code"`
	Timezone      string `json:"timezone"`

	Religion     string `json:"religion"`
	Tradition    string `json:"tradition"`
	Denomination string `json:"denomination"`
	Sect         string `json:"sect"`
	SizeCategory string `json:"size_category"`

	AverageWeeklyAttendance string `json:"average_weekly_attendance"`
	FoundedYear             string `json:"founded_year"`

	Languages []string `json:"languages"`
	Tags      []string `json:"tags"`
}

// Create validates the subdomain format, enforces uniqueness (including
// against deactivated tenants), and inserts the normalized record.
//
// The application-level existence check exists to produce a friendly
// conflict error; the case-insensitive unique index on subdomain is the
// actual race-proof enforcement, and a lost check-then-insert race
// surfaces as a duplicate key error mapped to the same ErrSubdomainTaken.
func (s *Service) Create(ctx context.Context, in CreateInput) (*tenant.Tenant, error) {
	name := strings.TrimSpace(in.Name)
	subdomain := strings.ToLower(strings.TrimSpace(in.Subdomain))
	contactEmail := strings.ToLower(strings.TrimSpace(in.ContactEmail))
	if name == "" || subdomain == "" || contactEmail == "" {
		return nil, ErrMissingRequiredFields
	}

	if !subdomainPattern.MatchString(subdomain) {
		return nil, ErrSubdomainInvalidFormat
	}

	// Uniqueness is permanent: a deactivated tenant still holds its
	// subdomain, so the existence check includes inactive rows.
	existing, err := s.store.GetByIdentifier(ctx, subdomain, true)
	if err != nil && !errors.Is(err, tenant.ErrTenantNotFound) {
		return nil, fmt.Errorf("check subdomain availability: %w", err)
	}
	if existing != nil {
		return nil, ErrSubdomainTaken
	}

	t := &tenant.Tenant{
		Name:          name,
		Subdomain:     subdomain,
		Domain:        strings.ToLower(strings.TrimSpace(in.Domain)),
		ContactEmail:  contactEmail,
		Phone:         strings.TrimSpace(in.Phone),
		Address:       strings.TrimSpace(in.Address),
		City:          strings.TrimSpace(in.City),
		StateProvince: strings.TrimSpace(in.StateProvince),
		Country:       strings.TrimSpace(in.Country),
		PostalCode:    strings.TrimSpace(in.PostalCode),
		Timezone:      strings.TrimSpace(in.Timezone),

		// Facets participate in case-insensitive equality filters;
		// store them lowercased.
		Religion:     strings.ToLower(strings.TrimSpace(in.Religion)),
		Tradition:    strings.ToLower(strings.TrimSpace(in.Tradition)),
		Denomination: strings.ToLower(strings.TrimSpace(in.Denomination)),
		Sect:         strings.ToLower(strings.TrimSpace(in.Sect)),
		SizeCategory: strings.ToLower(strings.TrimSpace(in.SizeCategory)),

		AverageWeeklyAttendance: parseIntOrNil(in.AverageWeeklyAttendance),
		FoundedYear:             parseIntOrNil(in.FoundedYear),

		Languages: splitAndTrim(in.Languages),
		Tags:      splitAndTrim(in.Tags),
	}

	created, err := s.store.Insert(ctx, t)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return nil, ErrSubdomainTaken
		}
		return nil, fmt.Errorf("create tenant: %w", err)
	}

	s.log.InfoContext(ctx, "tenant created",
		"tenant_id", created.ID, "subdomain", created.Subdomain)
	return created, nil
}

// UpdateInput carries a partial update. Nil fields are untouched.
type UpdateInput struct {
	Name         *string `json:"name"`
	Domain       *string `json:"domain"`
	ContactEmail *string `json:"contact_email"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	Timezone     *string `json:"timezone"`
}

// Update applies a partial update restricted to the mutable allow-list.
// Subdomain is deliberately not updatable; it is the tenant's durable
// address.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*tenant.Tenant, error) {
	fields := make(map[string]string)
	setField := func(column string, v *string) {
		if v != nil {
			fields[column] = strings.TrimSpace(*v)
		}
	}
	setField("name", in.Name)
	setField("domain", in.Domain)
	setField("contact_email", in.ContactEmail)
	setField("phone", in.Phone)
	setField("address", in.Address)
	setField("timezone", in.Timezone)

	if len(fields) == 0 {
		return nil, ErrNoUpdatableFields
	}
	if domain, ok := fields["domain"]; ok {
		fields["domain"] = strings.ToLower(domain)
	}
	if email, ok := fields["contact_email"]; ok {
		fields["contact_email"] = strings.ToLower(email)
	}

	updated, err := s.store.Update(ctx, id, fields)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			// The only other unique column reachable here is domain.
			return nil, ErrSubdomainTaken
		}
		return nil, fmt.Errorf("update tenant: %w", err)
	}
	return updated, nil
}

// Search runs a public discovery query.
func (s *Service) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	return s.store.Search(ctx, q)
}

func parseIntOrNil(raw string) *int {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil
	}
	return &n
}

func splitAndTrim(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for part := range strings.SplitSeq(v, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
