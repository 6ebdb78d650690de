package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrEmailTaken         = errors.New("auth: email already registered for this tenant")
	ErrUserNotFound       = errors.New("auth: user not found")
	ErrUserInactive       = errors.New("auth: user account is deactivated")
	ErrWeakPassword       = errors.New("auth: password does not meet requirements")
	ErrMissingFields      = errors.New("auth: email and password are required")
)
