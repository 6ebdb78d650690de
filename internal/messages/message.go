// Package messages implements member-to-member messaging within a
// tenant. Messages never cross tenants: every query is keyed by the
// resolved tenant's id, and participants are validated against the
// session claims.
package messages

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single note from one member to another within the same
// tenant.
type Message struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	SenderID    uuid.UUID `json:"sender_id"`
	RecipientID uuid.UUID `json:"recipient_id"`

	Subject string `json:"subject,omitempty"`
	Body    string `json:"body"`

	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Read reports whether the recipient has opened the message.
func (m *Message) Read() bool {
	return m.ReadAt != nil
}
