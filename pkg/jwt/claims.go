package jwt

import (
	"time"

	"github.com/google/uuid"
)

// Claims is the token payload issued at login. TenantID pins the session
// to the tenant the user authenticated under; the membership validator
// compares it against the resolved tenant on every scoped request.
type Claims struct {
	UserID   uuid.UUID `json:"user_id"`
	TenantID uuid.UUID `json:"tenant_id"`
	Email    string    `json:"email"`

	ExpiresAt int64 `json:"exp,omitempty"`
	IssuedAt  int64 `json:"iat,omitempty"`
}

// NewClaims builds session claims expiring after ttl.
func NewClaims(userID, tenantID uuid.UUID, email string, ttl time.Duration) Claims {
	now := time.Now()
	return Claims{
		UserID:    userID,
		TenantID:  tenantID,
		Email:     email,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	}
}

// Valid checks temporal claims. Zero values are treated as unset per
// RFC 7519 and skipped.
func (c Claims) Valid() error {
	if c.ExpiresAt > 0 && time.Now().Unix() > c.ExpiresAt {
		return ErrExpiredToken
	}
	return nil
}
