package events_test

import (
	"context"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grandpajoe1980/temple3/internal/events"
)

type fakeEventStore struct {
	byID map[uuid.UUID]*events.Event
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{byID: make(map[uuid.UUID]*events.Event)}
}

func (s *fakeEventStore) Insert(_ context.Context, e *events.Event) (*events.Event, error) {
	cp := *e
	cp.ID = uuid.New()
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	s.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (s *fakeEventStore) GetByID(_ context.Context, tenantID, id uuid.UUID) (*events.Event, error) {
	e, ok := s.byID[id]
	if !ok || e.TenantID != tenantID {
		return nil, events.ErrEventNotFound
	}
	cp := *e
	return &cp, nil
}

func (s *fakeEventStore) ListWindow(_ context.Context, tenantID uuid.UUID, from, to time.Time) ([]events.Event, error) {
	var out []events.Event
	for _, e := range s.byID {
		if e.TenantID != tenantID {
			continue
		}
		if !from.IsZero() && e.EndsAt.Before(from) {
			continue
		}
		if !to.IsZero() && !e.StartsAt.Before(to) {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (s *fakeEventStore) Update(_ context.Context, e *events.Event) (*events.Event, error) {
	existing, ok := s.byID[e.ID]
	if !ok || existing.TenantID != e.TenantID {
		return nil, events.ErrEventNotFound
	}
	cp := *e
	cp.UpdatedAt = time.Now()
	s.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (s *fakeEventStore) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	e, ok := s.byID[id]
	if !ok || e.TenantID != tenantID {
		return events.ErrEventNotFound
	}
	delete(s.byID, id)
	return nil
}

func newTestEventService(store events.Store) *events.Service {
	return events.NewService(store, slog.New(slog.DiscardHandler))
}

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	starts := time.Date(2026, 9, 6, 10, 0, 0, 0, time.UTC)

	t.Run("creates with defaulted end time", func(t *testing.T) {
		t.Parallel()

		svc := newTestEventService(newFakeEventStore())

		e, err := svc.Create(ctx, uuid.New(), uuid.New(), events.EventInput{
			Title:    " Morning Meditation ",
			StartsAt: starts,
		})
		require.NoError(t, err)
		assert.Equal(t, "Morning Meditation", e.Title)
		assert.Equal(t, starts, e.EndsAt)
	})

	t.Run("rejects missing title or start", func(t *testing.T) {
		t.Parallel()

		svc := newTestEventService(newFakeEventStore())

		_, err := svc.Create(ctx, uuid.New(), uuid.New(), events.EventInput{StartsAt: starts})
		assert.ErrorIs(t, err, events.ErrMissingFields)

		_, err = svc.Create(ctx, uuid.New(), uuid.New(), events.EventInput{Title: "x"})
		assert.ErrorIs(t, err, events.ErrMissingFields)
	})

	t.Run("rejects end before start", func(t *testing.T) {
		t.Parallel()

		svc := newTestEventService(newFakeEventStore())

		_, err := svc.Create(ctx, uuid.New(), uuid.New(), events.EventInput{
			Title:    "x",
			StartsAt: starts,
			EndsAt:   starts.Add(-time.Hour),
		})
		assert.ErrorIs(t, err, events.ErrInvalidWindow)
	})
}

func TestServiceList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tenantID := uuid.New()
	day := func(d int) time.Time {
		return time.Date(2026, 9, d, 10, 0, 0, 0, time.UTC)
	}

	seed := func(t *testing.T) *events.Service {
		t.Helper()
		svc := newTestEventService(newFakeEventStore())
		for d := 1; d <= 5; d++ {
			_, err := svc.Create(ctx, tenantID, uuid.New(), events.EventInput{
				Title:    "daily",
				StartsAt: day(d),
				EndsAt:   day(d).Add(time.Hour),
			})
			require.NoError(t, err)
		}
		// Another tenant's event must never surface.
		_, err := svc.Create(ctx, uuid.New(), uuid.New(), events.EventInput{
			Title: "other", StartsAt: day(3),
		})
		require.NoError(t, err)
		return svc
	}

	t.Run("window bounds", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)
		list, err := svc.List(ctx, tenantID, day(2), day(4))
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, day(2), list[0].StartsAt)
		assert.Equal(t, day(3), list[1].StartsAt)
	})

	t.Run("open window returns all tenant events", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)
		list, err := svc.List(ctx, tenantID, time.Time{}, time.Time{})
		require.NoError(t, err)
		assert.Len(t, list, 5)
	})
}

func TestServiceUpdateDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tenantID := uuid.New()
	starts := time.Date(2026, 9, 6, 10, 0, 0, 0, time.UTC)

	seed := func(t *testing.T) (*events.Service, *events.Event) {
		t.Helper()
		svc := newTestEventService(newFakeEventStore())
		e, err := svc.Create(ctx, tenantID, uuid.New(), events.EventInput{
			Title: "Original", StartsAt: starts,
		})
		require.NoError(t, err)
		return svc, e
	}

	t.Run("update replaces mutable fields", func(t *testing.T) {
		t.Parallel()

		svc, e := seed(t)
		updated, err := svc.Update(ctx, tenantID, e.ID, events.EventInput{
			Title:    "Renamed",
			Location: "Main hall",
			StartsAt: starts.Add(time.Hour),
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, "Main hall", updated.Location)
		assert.Equal(t, e.CreatedBy, updated.CreatedBy)
	})

	t.Run("update from another tenant not found", func(t *testing.T) {
		t.Parallel()

		svc, e := seed(t)
		_, err := svc.Update(ctx, uuid.New(), e.ID, events.EventInput{
			Title: "x", StartsAt: starts,
		})
		assert.ErrorIs(t, err, events.ErrEventNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		svc, e := seed(t)
		require.NoError(t, svc.Delete(ctx, tenantID, e.ID))
		_, err := svc.Get(ctx, tenantID, e.ID)
		assert.ErrorIs(t, err, events.ErrEventNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, tenantID, e.ID), events.ErrEventNotFound)
	})
}
