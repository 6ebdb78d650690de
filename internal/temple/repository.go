package temple

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/grandpajoe1980/temple3/pkg/pg"
	"github.com/grandpajoe1980/temple3/pkg/tenant"
)

// tenantColumns is the canonical column list; every query that returns
// tenant rows selects exactly this set so scanning stays in one place.
const tenantColumns = `id, name, subdomain, domain, contact_email, phone, address,
	city, state_province, country, postal_code, timezone,
	religion, tradition, denomination, sect, size_category,
	average_weekly_attendance, founded_year, languages, tags,
	is_active, created_at, updated_at`

// Repository is the pgx-backed tenant catalog store. It implements
// tenant.Provider for the resolution middleware.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetByIdentifier resolves a tenant by ID (verbatim), subdomain, or
// custom domain (both case-insensitive) in a single OR lookup. The
// unique indexes on all three fields guarantee at most one row.
func (r *Repository) GetByIdentifier(ctx context.Context, identifier string, includeInactive bool) (*tenant.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants
		WHERE (id::text = $1 OR LOWER(subdomain) = $2 OR LOWER(domain) = $2)`
	if !includeInactive {
		query += ` AND is_active = TRUE`
	}

	row := r.pool.QueryRow(ctx, query, identifier, strings.ToLower(identifier))
	t, err := scanTenant(row)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, fmt.Errorf("get tenant by identifier: %w", err)
	}
	return t, nil
}

// Insert persists a new tenant and returns the stored row.
func (r *Repository) Insert(ctx context.Context, t *tenant.Tenant) (*tenant.Tenant, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tenants (
			name, subdomain, domain, contact_email, phone, address,
			city, state_province, country, postal_code, timezone,
			religion, tradition, denomination, sect, size_category,
			average_weekly_attendance, founded_year, languages, tags
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16,
			$17, $18, $19, $20
		)
		RETURNING `+tenantColumns,
		t.Name, t.Subdomain, t.Domain, t.ContactEmail, t.Phone, t.Address,
		t.City, t.StateProvince, t.Country, t.PostalCode, t.Timezone,
		t.Religion, t.Tradition, t.Denomination, t.Sect, t.SizeCategory,
		t.AverageWeeklyAttendance, t.FoundedYear, t.Languages, t.Tags,
	)

	created, err := scanTenant(row)
	if err != nil {
		return nil, fmt.Errorf("insert tenant: %w", err)
	}
	return created, nil
}

// Update applies a partial field update. fields maps column names to new
// values; callers are responsible for restricting keys to the mutable
// allow-list before reaching this layer.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, fields map[string]string) (*tenant.Tenant, error) {
	assignments := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+1)
	for column, value := range fields {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	assignments = append(assignments, "updated_at = now()")

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE tenants SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(assignments, ", "), len(args), tenantColumns)

	row := r.pool.QueryRow(ctx, query, args...)
	updated, err := scanTenant(row)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, fmt.Errorf("update tenant: %w", err)
	}
	return updated, nil
}

// Search runs the discovery query. The count and data queries share the
// identical predicate set and arguments, so the returned total is always
// consistent with the page.
func (r *Repository) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	q.normalize()
	where, args := q.where()

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tenants`+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count tenants: %w", err)
	}

	dataQuery := fmt.Sprintf(`SELECT %s FROM tenants%s ORDER BY name ASC LIMIT $%d OFFSET $%d`,
		tenantColumns, where, len(args)+1, len(args)+2)
	rows, err := r.pool.Query(ctx, dataQuery, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, fmt.Errorf("search tenants: %w", err)
	}
	defer rows.Close()

	temples := make([]tenant.Tenant, 0, q.Limit)
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tenant row: %w", err)
		}
		temples = append(temples, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search tenants: %w", err)
	}

	return &SearchResult{Temples: temples, Total: total, Limit: q.Limit, Offset: q.Offset}, nil
}

// SearchResult is one page of discovery results plus the total match
// count computed independently of the page window.
type SearchResult struct {
	Temples []tenant.Tenant `json:"temples"`
	Total   int             `json:"total"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

func scanTenant(row pgx.Row) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := row.Scan(
		&t.ID, &t.Name, &t.Subdomain, &t.Domain, &t.ContactEmail, &t.Phone, &t.Address,
		&t.City, &t.StateProvince, &t.Country, &t.PostalCode, &t.Timezone,
		&t.Religion, &t.Tradition, &t.Denomination, &t.Sect, &t.SizeCategory,
		&t.AverageWeeklyAttendance, &t.FoundedYear, &t.Languages, &t.Tags,
		&t.Active, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
