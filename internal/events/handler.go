package events

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/grandpajoe1980/temple3/internal/httpx"
	"github.com/grandpajoe1980/temple3/pkg/jwt"
	"github.com/grandpajoe1980/temple3/pkg/tenant"
)

// Handler exposes the calendar over HTTP. Reads require only the
// resolved tenant; mutations additionally require a member session,
// wired by the caller.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// PublicRoutes mounts the read-only calendar.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/{eventID}", h.handleGet)
}

// ProtectedRoutes mounts the mutating endpoints.
func (h *Handler) ProtectedRoutes(r chi.Router) {
	r.Post("/", h.handleCreate)
	r.Put("/{eventID}", h.handleUpdate)
	r.Delete("/{eventID}", h.handleDelete)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	t, ok := tenant.FromContext(r.Context())
	if !ok {
		httpx.TenantErrorHandler(w, r, tenant.ErrNoTenantInContext)
		return
	}

	from, err := timeParam(r, "from")
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "from must be RFC 3339")
		return
	}
	to, err := timeParam(r, "to")
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "to must be RFC 3339")
		return
	}

	list, err := h.svc.List(r.Context(), t.ID, from, to)
	if err != nil {
		httpx.Internal(w)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	t, ok := tenant.FromContext(r.Context())
	if !ok {
		httpx.TenantErrorHandler(w, r, tenant.ErrNoTenantInContext)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "eventID"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "invalid event id")
		return
	}

	e, err := h.svc.Get(r.Context(), t.ID, id)
	switch {
	case errors.Is(err, ErrEventNotFound):
		httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, "event not found")
	case err != nil:
		httpx.Internal(w)
	default:
		httpx.JSON(w, http.StatusOK, e)
	}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	t, ok := tenant.FromContext(r.Context())
	if !ok {
		httpx.TenantErrorHandler(w, r, tenant.ErrNoTenantInContext)
		return
	}
	claims, ok := jwt.ClaimsFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, httpx.CodeUnauthorized, "authentication required")
		return
	}

	var in EventInput
	if err := httpx.Decode(r, &in); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "invalid request body")
		return
	}

	e, err := h.svc.Create(r.Context(), t.ID, claims.UserID, in)
	switch {
	case errors.Is(err, ErrMissingFields):
		httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "title and starts_at are required")
	case errors.Is(err, ErrInvalidWindow):
		httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "ends_at must not precede starts_at")
	case err != nil:
		httpx.Internal(w)
	default:
		httpx.JSON(w, http.StatusCreated, e)
	}
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	t, ok := tenant.FromContext(r.Context())
	if !ok {
		httpx.TenantErrorHandler(w, r, tenant.ErrNoTenantInContext)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "eventID"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "invalid event id")
		return
	}

	var in EventInput
	if err := httpx.Decode(r, &in); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "invalid request body")
		return
	}

	e, err := h.svc.Update(r.Context(), t.ID, id, in)
	switch {
	case errors.Is(err, ErrMissingFields):
		httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "title and starts_at are required")
	case errors.Is(err, ErrInvalidWindow):
		httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "ends_at must not precede starts_at")
	case errors.Is(err, ErrEventNotFound):
		httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, "event not found")
	case err != nil:
		httpx.Internal(w)
	default:
		httpx.JSON(w, http.StatusOK, e)
	}
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	t, ok := tenant.FromContext(r.Context())
	if !ok {
		httpx.TenantErrorHandler(w, r, tenant.ErrNoTenantInContext)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "eventID"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "invalid event id")
		return
	}

	err = h.svc.Delete(r.Context(), t.ID, id)
	switch {
	case errors.Is(err, ErrEventNotFound):
		httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, "event not found")
	case err != nil:
		httpx.Internal(w)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func timeParam(r *http.Request, key string) (time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}
