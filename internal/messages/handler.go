package messages

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/grandpajoe1980/temple3/internal/httpx"
	"github.com/grandpajoe1980/temple3/pkg/jwt"
	"github.com/grandpajoe1980/temple3/pkg/tenant"
)

// Handler exposes messaging over HTTP. All routes sit behind the
// tenant, token and membership middlewares; the resolved tenant and the
// session claims identify the mailbox.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.handleSend)
	r.Get("/inbox", h.handleInbox)
	r.Get("/sent", h.handleSent)
	r.Get("/{messageID}", h.handleGet)
}

// scope pulls the tenant and user the middlewares established. Both are
// guaranteed by the route wiring; a miss means a wiring bug, answered
// with the same errors the gates produce.
func scope(w http.ResponseWriter, r *http.Request) (tenantID, userID uuid.UUID, ok bool) {
	t, ok := tenant.FromContext(r.Context())
	if !ok {
		httpx.TenantErrorHandler(w, r, tenant.ErrNoTenantInContext)
		return uuid.Nil, uuid.Nil, false
	}
	claims, ok := jwt.ClaimsFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, httpx.CodeUnauthorized, "authentication required")
		return uuid.Nil, uuid.Nil, false
	}
	return t.ID, claims.UserID, true
}

func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	tenantID, userID, ok := scope(w, r)
	if !ok {
		return
	}

	var in SendInput
	if err := httpx.Decode(r, &in); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "invalid request body")
		return
	}

	m, err := h.svc.Send(r.Context(), tenantID, userID, in)
	switch {
	case errors.Is(err, ErrMissingFields):
		httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "recipient_id and body are required")
	case errors.Is(err, ErrRecipientNotFound):
		httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, "recipient not found")
	case err != nil:
		httpx.Internal(w)
	default:
		httpx.JSON(w, http.StatusCreated, m)
	}
}

func (h *Handler) handleInbox(w http.ResponseWriter, r *http.Request) {
	tenantID, userID, ok := scope(w, r)
	if !ok {
		return
	}

	list, err := h.svc.Inbox(r.Context(), tenantID, userID)
	if err != nil {
		httpx.Internal(w)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) handleSent(w http.ResponseWriter, r *http.Request) {
	tenantID, userID, ok := scope(w, r)
	if !ok {
		return
	}

	list, err := h.svc.Sent(r.Context(), tenantID, userID)
	if err != nil {
		httpx.Internal(w)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	tenantID, userID, ok := scope(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "messageID"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "invalid message id")
		return
	}

	m, err := h.svc.Get(r.Context(), tenantID, userID, id)
	switch {
	case errors.Is(err, ErrMessageNotFound):
		httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, "message not found")
	case err != nil:
		httpx.Internal(w)
	default:
		httpx.JSON(w, http.StatusOK, m)
	}
}
