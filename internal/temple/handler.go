package temple

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/grandpajoe1980/temple3/internal/httpx"
	"github.com/grandpajoe1980/temple3/pkg/tenant"
)

// Handler exposes the catalog over HTTP: public registration and
// discovery, plus tenant-scoped read and update of the current tenant.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// PublicRoutes mounts the endpoints that work without a resolved
// tenant.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Post("/", h.handleCreate)
	r.Get("/search", h.handleSearch)
}

// CurrentReadRoutes mounts the read side of the current-tenant
// endpoints. Requires only a resolved tenant.
func (h *Handler) CurrentReadRoutes(r chi.Router) {
	r.Get("/", h.handleGetCurrent)
}

// CurrentWriteRoutes mounts the mutating side. The caller additionally
// wires authentication and membership checks in front.
func (h *Handler) CurrentWriteRoutes(r chi.Router) {
	r.Put("/", h.handleUpdateCurrent)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := httpx.Decode(r, &in); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "invalid request body")
		return
	}

	created, err := h.svc.Create(r.Context(), in)
	switch {
	case errors.Is(err, ErrMissingRequiredFields):
		httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "name, subdomain and contact_email are required")
	case errors.Is(err, ErrSubdomainInvalidFormat):
		httpx.Error(w, http.StatusBadRequest, httpx.CodeSubdomainInvalidFormat, "subdomain may contain only lowercase letters, digits and hyphens")
	case errors.Is(err, ErrSubdomainTaken):
		httpx.Error(w, http.StatusConflict, httpx.CodeSubdomainTaken, "subdomain is already taken")
	case err != nil:
		httpx.Internal(w)
	default:
		httpx.JSON(w, http.StatusCreated, created)
	}
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	q, err := parseSearchQuery(r.URL.Query())
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, err.Error())
		return
	}

	result, err := h.svc.Search(r.Context(), q)
	if err != nil {
		httpx.Internal(w)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) handleGetCurrent(w http.ResponseWriter, r *http.Request) {
	t, ok := tenant.FromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeTenantRequired, "tenant context is required")
		return
	}
	httpx.JSON(w, http.StatusOK, t)
}

func (h *Handler) handleUpdateCurrent(w http.ResponseWriter, r *http.Request) {
	t, ok := tenant.FromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeTenantRequired, "tenant context is required")
		return
	}

	var in UpdateInput
	if err := httpx.Decode(r, &in); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "invalid request body")
		return
	}

	updated, err := h.svc.Update(r.Context(), t.ID, in)
	switch {
	case errors.Is(err, ErrNoUpdatableFields):
		httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "no updatable fields provided")
	case errors.Is(err, ErrSubdomainTaken):
		httpx.Error(w, http.StatusConflict, httpx.CodeSubdomainTaken, "domain is already taken")
	case errors.Is(err, tenant.ErrTenantNotFound):
		httpx.Error(w, http.StatusNotFound, httpx.CodeTenantNotFound, "tenant not found")
	case err != nil:
		httpx.Internal(w)
	default:
		httpx.JSON(w, http.StatusOK, updated)
	}
}

// parseSearchQuery maps URL query parameters onto a SearchQuery.
// Repeated facet parameters and comma-separated values are both
// accepted. Unknown parameters are ignored; malformed numerics are an
// error rather than silently dropped.
func parseSearchQuery(values url.Values) (SearchQuery, error) {
	q := SearchQuery{
		Term: values.Get("q"),
		Facets: Facets{
			Religions:      listParam(values, "religion"),
			Traditions:     listParam(values, "tradition"),
			Denominations:  listParam(values, "denomination"),
			Sects:          listParam(values, "sect"),
			Countries:      listParam(values, "country"),
			States:         listParam(values, "state"),
			Cities:         listParam(values, "city"),
			SizeCategories: listParam(values, "size_category"),
			Languages:      listParam(values, "language"),
			Tags:           listParam(values, "tag"),
		},
	}

	var err error
	if q.Facets.MinAttendance, err = intParam(values, "min_attendance"); err != nil {
		return q, err
	}
	if q.Facets.MaxAttendance, err = intParam(values, "max_attendance"); err != nil {
		return q, err
	}
	if q.Facets.FoundedAfter, err = intParam(values, "founded_after"); err != nil {
		return q, err
	}
	if q.Facets.FoundedBefore, err = intParam(values, "founded_before"); err != nil {
		return q, err
	}

	if raw := values.Get("limit"); raw != "" {
		q.Limit, err = strconv.Atoi(raw)
		if err != nil {
			return q, errors.New("limit must be an integer")
		}
	}
	if raw := values.Get("offset"); raw != "" {
		q.Offset, err = strconv.Atoi(raw)
		if err != nil {
			return q, errors.New("offset must be an integer")
		}
	}
	return q, nil
}

func listParam(values url.Values, key string) []string {
	var out []string
	for _, raw := range values[key] {
		for part := range strings.SplitSeq(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

func intParam(values url.Values, key string) (*int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.New(key + " must be an integer")
	}
	return &n, nil
}
