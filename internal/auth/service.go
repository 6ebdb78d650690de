package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/grandpajoe1980/temple3/pkg/jwt"
	"github.com/grandpajoe1980/temple3/pkg/pg"
)

// Store is the user persistence surface the service needs.
type Store interface {
	Insert(ctx context.Context, u *User) (*User, error)
	GetByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*User, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*User, error)
}

// Service registers members and issues session tokens, always within a
// single tenant's account space.
type Service struct {
	store    Store
	tokens   *jwt.Service
	tokenTTL time.Duration
	log      *slog.Logger
}

func NewService(store Store, tokens *jwt.Service, tokenTTL time.Duration, log *slog.Logger) *Service {
	return &Service{store: store, tokens: tokens, tokenTTL: tokenTTL, log: log}
}

// RegisterInput carries a registration request.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Register creates an account under tenantID. The same email may exist
// under other tenants; uniqueness holds per tenant only.
func (s *Service) Register(ctx context.Context, tenantID uuid.UUID, in RegisterInput) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.store.Insert(ctx, &User{
		TenantID:     tenantID,
		Email:        email,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PasswordHash: hash,
	})
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("register user: %w", err)
	}

	s.log.InfoContext(ctx, "user registered",
		"user_id", created.ID, "tenant_id", created.TenantID)
	return created, nil
}

// Login verifies credentials within tenantID and issues a session token
// pinned to that tenant. A valid password registered under a different
// tenant never matches here because the lookup is tenant-scoped.
func (s *Service) Login(ctx context.Context, tenantID uuid.UUID, email, password string) (string, *User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, ErrMissingFields
	}

	u, err := s.store.GetByEmail(ctx, tenantID, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login lookup: %w", err)
	}

	if !verifyPassword(u.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}
	if !u.Active {
		// Password verified first so a deactivated account is only
		// disclosed to someone holding its credentials.
		return "", nil, ErrUserInactive
	}

	token, err := s.tokens.Generate(jwt.NewClaims(u.ID, u.TenantID, u.Email, s.tokenTTL))
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in",
		"user_id", u.ID, "tenant_id", u.TenantID)
	return token, u, nil
}

// CurrentUser loads the account behind verified claims, scoped to the
// claims' own tenant.
func (s *Service) CurrentUser(ctx context.Context, claims jwt.Claims) (*User, error) {
	return s.store.GetByID(ctx, claims.TenantID, claims.UserID)
}
