// Package auth implements tenant-scoped user accounts and session
// tokens. Every account belongs to exactly one tenant; the same email
// may register independently under different tenants, and credentials
// never cross the tenant boundary because lookups are always keyed by
// the resolved tenant first.
package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a member account of a single tenant.
type User struct {
	ID       uuid.UUID `json:"id"`
	TenantID uuid.UUID `json:"tenant_id"`
	Email    string    `json:"email"`

	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`

	// PasswordHash never leaves the server.
	PasswordHash string `json:"-"`

	Active bool `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
