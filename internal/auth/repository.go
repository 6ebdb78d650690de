package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/grandpajoe1980/temple3/pkg/pg"
)

const userColumns = `id, tenant_id, email, first_name, last_name, password_hash, is_active, created_at, updated_at`

// Repository persists users in PostgreSQL. All lookups are scoped by
// tenant id; there is no cross-tenant query path.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Insert(ctx context.Context, u *User) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (tenant_id, email, first_name, last_name, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		u.TenantID, u.Email, u.FirstName, u.LastName, u.PasswordHash,
	)
	created, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return created, nil
}

// GetByEmail looks up a user by email within one tenant. Email matching
// is case-insensitive.
func (r *Repository) GetByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE tenant_id = $1 AND LOWER(email) = LOWER($2)`,
		tenantID, email,
	)
	u, err := scanUser(row)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (r *Repository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE tenant_id = $1 AND id = $2`,
		tenantID, id,
	)
	u, err := scanUser(row)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// Exists reports whether a user id belongs to the tenant. Used by other
// modules to validate participant references without loading accounts.
func (r *Repository) Exists(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE tenant_id = $1 AND id = $2)`,
		tenantID, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.TenantID, &u.Email, &u.FirstName, &u.LastName,
		&u.PasswordHash, &u.Active, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
