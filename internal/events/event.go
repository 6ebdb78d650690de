// Package events implements each tenant's community calendar. Events
// are plain scheduled entries; recurrence and reminders are out of
// scope.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is one calendar entry belonging to a tenant.
type Event struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	CreatedBy uuid.UUID `json:"created_by"`

	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`

	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
