package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ActivityCounter reports how many transactions reference an account.
type ActivityCounter interface {
	CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
}

// Service handles account business logic
type Service struct {
	repo     Repository
	activity ActivityCounter
}

// NewService creates a new account service. activity may be nil, in which
// case deletion skips the has-transactions guard.
func NewService(repo Repository, activity ActivityCounter) *Service {
	return &Service{repo: repo, activity: activity}
}

// Create creates a new account after validating it and checking name uniqueness
func (s *Service) Create(ctx context.Context, a *Account) error {
	if err := a.Validate(); err != nil {
		return err
	}

	exists, err := s.repo.ExistsByUserAndName(ctx, a.UserID, a.Name)
	if err != nil {
		return fmt.Errorf("failed to check account name: %w", err)
	}
	if exists {
		return ErrDuplicateName
	}

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	return s.repo.Create(ctx, a)
}

// Get retrieves an account owned by the user
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Account, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, ErrNotOwner
	}
	return a, nil
}

// List retrieves all accounts for a user ordered by display order
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Account, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// Update updates an account's name, currency and liability flag
func (s *Service) Update(ctx context.Context, userID uuid.UUID, a *Account) error {
	if err := a.Validate(); err != nil {
		return err
	}

	existing, err := s.Get(ctx, userID, a.ID)
	if err != nil {
		return err
	}

	existing.Name = a.Name
	existing.Currency = a.Currency
	existing.IsLiability = a.IsLiability

	return s.repo.Update(ctx, existing)
}

// SetHidden hides or unhides an account
func (s *Service) SetHidden(ctx context.Context, userID, id uuid.UUID, hidden bool) error {
	a, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	a.Hidden = hidden
	return s.repo.Update(ctx, a)
}

// Reorder assigns new display orders following the given ID sequence
func (s *Service) Reorder(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	for order, id := range ids {
		a, err := s.Get(ctx, userID, id)
		if err != nil {
			return err
		}

		a.DisplayOrder = order
		if err := s.repo.Update(ctx, a); err != nil {
			return fmt.Errorf("failed to reorder account %s: %w", id, err)
		}
	}
	return nil
}

// Delete deletes an account owned by the user. Accounts with recorded
// transactions cannot be deleted, only hidden.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}

	if s.activity != nil {
		count, err := s.activity.CountByAccount(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to count account activity: %w", err)
		}
		if count > 0 {
			return ErrAccountHasActivity
		}
	}

	return s.repo.Delete(ctx, id)
}
