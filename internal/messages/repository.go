package messages

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/grandpajoe1980/temple3/pkg/pg"
)

const messageColumns = `id, tenant_id, sender_id, recipient_id, subject, body, read_at, created_at`

// Repository persists messages in PostgreSQL, always scoped by tenant.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Insert(ctx context.Context, m *Message) (*Message, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO messages (tenant_id, sender_id, recipient_id, subject, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+messageColumns,
		m.TenantID, m.SenderID, m.RecipientID, m.Subject, m.Body,
	)
	created, err := scanMessage(row)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Message, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+messageColumns+`
		FROM messages
		WHERE tenant_id = $1 AND id = $2`,
		tenantID, id,
	)
	m, err := scanMessage(row)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("get message: %w", err)
	}
	return m, nil
}

// ListInbox returns messages received by userID, newest first.
func (r *Repository) ListInbox(ctx context.Context, tenantID, userID uuid.UUID) ([]Message, error) {
	return r.list(ctx, `
		SELECT `+messageColumns+`
		FROM messages
		WHERE tenant_id = $1 AND recipient_id = $2
		ORDER BY created_at DESC`,
		tenantID, userID)
}

// ListSent returns messages sent by userID, newest first.
func (r *Repository) ListSent(ctx context.Context, tenantID, userID uuid.UUID) ([]Message, error) {
	return r.list(ctx, `
		SELECT `+messageColumns+`
		FROM messages
		WHERE tenant_id = $1 AND sender_id = $2
		ORDER BY created_at DESC`,
		tenantID, userID)
}

// MarkRead stamps read_at once; a second call keeps the original time.
func (r *Repository) MarkRead(ctx context.Context, tenantID, id uuid.UUID) (*Message, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE messages
		SET read_at = COALESCE(read_at, now())
		WHERE tenant_id = $1 AND id = $2
		RETURNING `+messageColumns,
		tenantID, id,
	)
	m, err := scanMessage(row)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("mark message read: %w", err)
	}
	return m, nil
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]Message, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	out := make([]Message, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return out, nil
}

func scanMessage(row pgx.Row) (*Message, error) {
	var m Message
	err := row.Scan(
		&m.ID, &m.TenantID, &m.SenderID, &m.RecipientID,
		&m.Subject, &m.Body, &m.ReadAt, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
