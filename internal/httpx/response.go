// Package httpx provides the JSON response envelope and the closed set
// of error codes the API surfaces. Clients discriminate on the code
// field, never on message text.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Stable error codes. These are the API contract; messages are
// human-readable hints only.
const (
	CodeTenantNotFound          = "tenant_not_found"
	CodeTenantInactive          = "tenant_inactive"
	CodeTenantRequired          = "tenant_required"
	CodeTenantIdentifierMissing = "tenant_identifier_required"
	CodeTenantAccessDenied      = "tenant_access_denied"
	CodeSubdomainInvalidFormat  = "subdomain_invalid_format"
	CodeSubdomainTaken          = "subdomain_taken"
	CodeValidation              = "validation_error"
	CodeUnauthorized            = "unauthorized"
	CodeForbidden               = "forbidden"
	CodeNotFound                = "not_found"
	CodeConflict                = "conflict"
	CodeInternal                = "internal_error"
)

// ErrorDetail is the error half of the envelope.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

type errorEnvelope struct {
	Error ErrorDetail `json:"error"`
}

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a typed error response.
func Error(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, errorEnvelope{Error: ErrorDetail{Code: code, Message: message}})
}

// Internal writes a generic 500. Details stay in the logs, never in the
// response body.
func Internal(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, CodeInternal, "Internal server error")
}

// Decode reads a JSON request body into v.
func Decode(r *http.Request, v any) error {
	defer func() { _ = r.Body.Close() }()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return errors.Join(ErrInvalidRequestBody, err)
	}
	return nil
}

// ErrInvalidRequestBody is returned by Decode for malformed JSON.
var ErrInvalidRequestBody = errors.New("invalid request body")
