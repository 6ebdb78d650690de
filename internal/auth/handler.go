package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/grandpajoe1980/temple3/internal/httpx"
	"github.com/grandpajoe1980/temple3/pkg/jwt"
	"github.com/grandpajoe1980/temple3/pkg/tenant"
)

// Handler exposes registration, login and the current-user endpoint.
// All routes require a resolved tenant; /me additionally requires a
// session token and tenant membership, wired by the caller.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// PublicRoutes mounts register and login. They run inside the tenant
// scope but before any token check; the tenant identifies which account
// space credentials resolve against.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
}

// ProtectedRoutes mounts the endpoints behind token and membership
// checks.
func (h *Handler) ProtectedRoutes(r chi.Router) {
	r.Get("/me", h.handleMe)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	t, ok := tenant.FromContext(r.Context())
	if !ok {
		httpx.TenantErrorHandler(w, r, tenant.ErrNoTenantInContext)
		return
	}

	var in RegisterInput
	if err := httpx.Decode(r, &in); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "invalid request body")
		return
	}

	u, err := h.svc.Register(r.Context(), t.ID, in)
	switch {
	case errors.Is(err, ErrMissingFields):
		httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "email and password are required")
	case errors.Is(err, ErrWeakPassword):
		httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "password must be at least 8 characters")
	case errors.Is(err, ErrEmailTaken):
		httpx.Error(w, http.StatusConflict, httpx.CodeConflict, "email is already registered")
	case err != nil:
		httpx.Internal(w)
	default:
		httpx.JSON(w, http.StatusCreated, u)
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	t, ok := tenant.FromContext(r.Context())
	if !ok {
		httpx.TenantErrorHandler(w, r, tenant.ErrNoTenantInContext)
		return
	}

	var in loginRequest
	if err := httpx.Decode(r, &in); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "invalid request body")
		return
	}

	token, u, err := h.svc.Login(r.Context(), t.ID, in.Email, in.Password)
	switch {
	case errors.Is(err, ErrMissingFields):
		httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "email and password are required")
	case errors.Is(err, ErrInvalidCredentials):
		httpx.Error(w, http.StatusUnauthorized, httpx.CodeUnauthorized, "invalid email or password")
	case errors.Is(err, ErrUserInactive):
		httpx.Error(w, http.StatusForbidden, httpx.CodeForbidden, "account is deactivated")
	case err != nil:
		httpx.Internal(w)
	default:
		httpx.JSON(w, http.StatusOK, loginResponse{Token: token, User: u})
	}
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwt.ClaimsFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, httpx.CodeUnauthorized, "authentication required")
		return
	}

	u, err := h.svc.CurrentUser(r.Context(), claims)
	switch {
	case errors.Is(err, ErrUserNotFound):
		httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, "user not found")
	case err != nil:
		httpx.Internal(w)
	default:
		httpx.JSON(w, http.StatusOK, u)
	}
}
