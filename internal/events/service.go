package events

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store is the event persistence surface the service needs.
type Store interface {
	Insert(ctx context.Context, e *Event) (*Event, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Event, error)
	ListWindow(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]Event, error)
	Update(ctx context.Context, e *Event) (*Event, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type Service struct {
	store Store
	log   *slog.Logger
}

func NewService(store Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

// EventInput carries create and update requests. A zero EndsAt defaults
// to StartsAt, modeling a point-in-time event.
type EventInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
}

func (in *EventInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || in.StartsAt.IsZero() {
		return ErrMissingFields
	}
	if in.EndsAt.IsZero() {
		in.EndsAt = in.StartsAt
	}
	if in.EndsAt.Before(in.StartsAt) {
		return ErrInvalidWindow
	}
	return nil
}

func (s *Service) Create(ctx context.Context, tenantID, createdBy uuid.UUID, in EventInput) (*Event, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	created, err := s.store.Insert(ctx, &Event{
		TenantID:    tenantID,
		CreatedBy:   createdBy,
		Title:       in.Title,
		Description: strings.TrimSpace(in.Description),
		Location:    strings.TrimSpace(in.Location),
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
	})
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.InfoContext(ctx, "event created",
		"event_id", created.ID, "tenant_id", tenantID)
	return created, nil
}

func (s *Service) Get(ctx context.Context, tenantID, id uuid.UUID) (*Event, error) {
	return s.store.GetByID(ctx, tenantID, id)
}

// List returns the tenant's events overlapping the window. Zero bounds
// leave that side open.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]Event, error) {
	return s.store.ListWindow(ctx, tenantID, from, to)
}

func (s *Service) Update(ctx context.Context, tenantID, id uuid.UUID, in EventInput) (*Event, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	existing, err := s.store.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	existing.Title = in.Title
	existing.Description = strings.TrimSpace(in.Description)
	existing.Location = strings.TrimSpace(in.Location)
	existing.StartsAt = in.StartsAt
	existing.EndsAt = in.EndsAt
	return s.store.Update(ctx, existing)
}

func (s *Service) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.store.Delete(ctx, tenantID, id)
}
