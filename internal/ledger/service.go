package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/blogvolt/backend/internal/models"
)

type Service interface {
	// Debit atomically charges amount iff the balance covers it. A false
	// result means the user was not charged.
	Debit(ctx context.Context, userID uuid.UUID, amount int, attemptID uuid.UUID) (bool, error)
	// Credit unconditionally adds amount (refunds, admin grants, bonuses).
	Credit(ctx context.Context, userID uuid.UUID, amount int, entryType string, attemptID *uuid.UUID) error
	Entries(ctx context.Context, userID uuid.UUID) ([]*models.VoltEntry, error)
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) Service {
	return &service{repo: repo}
}

var _ Service = (*service)(nil)

func (s *service) Debit(ctx context.Context, userID uuid.UUID, amount int, attemptID uuid.UUID) (bool, error) {
	return s.repo.Debit(ctx, userID, amount, attemptID)
}

func (s *service) Credit(ctx context.Context, userID uuid.UUID, amount int, entryType string, attemptID *uuid.UUID) error {
	return s.repo.Credit(ctx, userID, amount, entryType, attemptID)
}

func (s *service) Entries(ctx context.Context, userID uuid.UUID) ([]*models.VoltEntry, error) {
	return s.repo.Entries(ctx, userID)
}
