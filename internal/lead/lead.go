// Package lead records contact details before the report stage spends
// generation budget. Records are append-only.
package lead

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"questio/internal/types"
)

var ErrInvalidContact = errors.New("contact must be an e-mail address")

// Record is one captured lead.
type Record struct {
	ID        string        `json:"id"`
	Contact   string        `json:"contact"`
	Answers   types.Answers `json:"answers"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Recorder is what the session flow depends on.
type Recorder interface {
	Record(ctx context.Context, contact string, answers types.Answers) error
}

// Store persists records. List exists for operators and tests; the
// session flow never reads leads back.
type Store interface {
	Append(ctx context.Context, rec Record) error
	List(ctx context.Context) ([]Record, error)
	Close() error
}

// Service validates contacts and appends them to a Store.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// NormalizeContact parses an address like "Kim <kim@example.com>" and
// returns the bare address.
func NormalizeContact(contact string) (string, error) {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return "", ErrInvalidContact
	}
	addr, err := mail.ParseAddress(contact)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidContact, err)
	}
	return strings.ToLower(addr.Address), nil
}

func (s *Service) Record(ctx context.Context, contact string, answers types.Answers) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("lead store is nil")
	}
	addr, err := NormalizeContact(contact)
	if err != nil {
		return err
	}
	rec := Record{
		ID:        uuid.NewString(),
		Contact:   addr,
		Answers:   answers.Clone(),
		CreatedAt: s.now(),
	}
	if err := s.store.Append(ctx, rec); err != nil {
		return fmt.Errorf("append lead: %w", err)
	}
	return nil
}
