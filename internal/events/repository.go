package events

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/grandpajoe1980/temple3/pkg/pg"
)

const eventColumns = `id, tenant_id, created_by, title, description, location, starts_at, ends_at, created_at, updated_at`

// Repository persists calendar events in PostgreSQL, scoped by tenant.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Insert(ctx context.Context, e *Event) (*Event, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO calendar_events (tenant_id, created_by, title, description, location, starts_at, ends_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+eventColumns,
		e.TenantID, e.CreatedBy, e.Title, e.Description, e.Location, e.StartsAt, e.EndsAt,
	)
	created, err := scanEvent(row)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Event, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+eventColumns+`
		FROM calendar_events
		WHERE tenant_id = $1 AND id = $2`,
		tenantID, id,
	)
	e, err := scanEvent(row)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

// ListWindow returns events overlapping [from, to), ordered by start
// time. Zero bounds leave that side open.
func (r *Repository) ListWindow(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM calendar_events
		WHERE tenant_id = $1`
	args := []any{tenantID}

	if !from.IsZero() {
		args = append(args, from)
		query += fmt.Sprintf(" AND ends_at >= $%d", len(args))
	}
	if !to.IsZero() {
		args = append(args, to)
		query += fmt.Sprintf(" AND starts_at < $%d", len(args))
	}
	query += " ORDER BY starts_at ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	out := make([]Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return out, nil
}

// Update overwrites the mutable fields of an event.
func (r *Repository) Update(ctx context.Context, e *Event) (*Event, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE calendar_events
		SET title = $3, description = $4, location = $5, starts_at = $6, ends_at = $7, updated_at = now()
		WHERE tenant_id = $1 AND id = $2
		RETURNING `+eventColumns,
		e.TenantID, e.ID, e.Title, e.Description, e.Location, e.StartsAt, e.EndsAt,
	)
	updated, err := scanEvent(row)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (r *Repository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM calendar_events WHERE tenant_id = $1 AND id = $2`,
		tenantID, id,
	)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEventNotFound
	}
	return nil
}

func scanEvent(row pgx.Row) (*Event, error) {
	var e Event
	err := row.Scan(
		&e.ID, &e.TenantID, &e.CreatedBy, &e.Title, &e.Description, &e.Location,
		&e.StartsAt, &e.EndsAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
