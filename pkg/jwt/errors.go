package jwt

import "errors"

// Parse failures collapse into a small sentinel set so callers can map
// them to HTTP statuses without inspecting messages.
var (
	ErrMissingSigningKey       = errors.New("jwt: missing signing key")
	ErrMissingClaims           = errors.New("jwt: missing claims")
	ErrInvalidToken            = errors.New("jwt: invalid token")
	ErrInvalidSignature        = errors.New("jwt: invalid signature")
	ErrExpiredToken            = errors.New("jwt: token is expired")
	ErrUnexpectedSigningMethod = errors.New("jwt: unexpected signing method")
)
