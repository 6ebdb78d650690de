package messages

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// Store is the message persistence surface the service needs.
type Store interface {
	Insert(ctx context.Context, m *Message) (*Message, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Message, error)
	ListInbox(ctx context.Context, tenantID, userID uuid.UUID) ([]Message, error)
	ListSent(ctx context.Context, tenantID, userID uuid.UUID) ([]Message, error)
	MarkRead(ctx context.Context, tenantID, id uuid.UUID) (*Message, error)
}

// UserDirectory verifies that a recipient exists within the tenant.
// The auth repository satisfies it.
type UserDirectory interface {
	Exists(ctx context.Context, tenantID, userID uuid.UUID) (bool, error)
}

type Service struct {
	store Store
	users UserDirectory
	log   *slog.Logger
}

func NewService(store Store, users UserDirectory, log *slog.Logger) *Service {
	return &Service{store: store, users: users, log: log}
}

// SendInput carries a send request.
type SendInput struct {
	RecipientID uuid.UUID `json:"recipient_id"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
}

// Send delivers a message from senderID to the recipient. Both must be
// members of tenantID; a recipient id from another tenant is simply not
// found here.
func (s *Service) Send(ctx context.Context, tenantID, senderID uuid.UUID, in SendInput) (*Message, error) {
	body := strings.TrimSpace(in.Body)
	if in.RecipientID == uuid.Nil || body == "" {
		return nil, ErrMissingFields
	}

	ok, err := s.users.Exists(ctx, tenantID, in.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("verify recipient: %w", err)
	}
	if !ok {
		return nil, ErrRecipientNotFound
	}

	created, err := s.store.Insert(ctx, &Message{
		TenantID:    tenantID,
		SenderID:    senderID,
		RecipientID: in.RecipientID,
		Subject:     strings.TrimSpace(in.Subject),
		Body:        body,
	})
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	s.log.InfoContext(ctx, "message sent",
		"message_id", created.ID, "tenant_id", tenantID)
	return created, nil
}

// Inbox lists messages received by userID.
func (s *Service) Inbox(ctx context.Context, tenantID, userID uuid.UUID) ([]Message, error) {
	return s.store.ListInbox(ctx, tenantID, userID)
}

// Sent lists messages sent by userID.
func (s *Service) Sent(ctx context.Context, tenantID, userID uuid.UUID) ([]Message, error) {
	return s.store.ListSent(ctx, tenantID, userID)
}

// Get returns one message if userID participates in it. Fetching as the
// recipient marks the message read.
func (s *Service) Get(ctx context.Context, tenantID, userID, id uuid.UUID) (*Message, error) {
	m, err := s.store.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	switch userID {
	case m.RecipientID:
		if !m.Read() {
			return s.store.MarkRead(ctx, tenantID, id)
		}
		return m, nil
	case m.SenderID:
		return m, nil
	default:
		// Existence of other members' messages is not disclosed.
		return nil, ErrMessageNotFound
	}
}
