package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finbook/finbook/internal/platform/account"
)

// Service handles transaction business logic. Creating or deleting a
// transaction keeps the affected account balances in sync.
type Service struct {
	repo     Repository
	accounts account.Repository
}

// NewService creates a new transaction service
func NewService(repo Repository, accounts account.Repository) *Service {
	return &Service{repo: repo, accounts: accounts}
}

// Create validates and stores a transaction, then applies its balance
// effects to the involved accounts. Planned transactions do not touch
// balances until they settle.
func (s *Service) Create(ctx context.Context, t *Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}

	if err := s.checkAccounts(ctx, t); err != nil {
		return err
	}

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	if !t.Planned {
		if err := s.applyEffects(ctx, t, 1); err != nil {
			return err
		}
	}

	return nil
}

// Get retrieves a transaction owned by the user
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Transaction, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, ErrNotOwner
	}
	return t, nil
}

// List retrieves transactions for a user matching the filter, newest first
func (s *Service) List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Transaction, error) {
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, userID, filter)
}

// ListByTimeRange retrieves all transactions for a user within [start, end]
func (s *Service) ListByTimeRange(ctx context.Context, userID uuid.UUID, start, end int64) ([]*Transaction, error) {
	return s.repo.ListByTimeRange(ctx, userID, start, end)
}

// Update replaces a transaction. Balance effects of the old version are
// reverted and the new version's effects are applied.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, t *Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}

	old, err := s.Get(ctx, userID, t.ID)
	if err != nil {
		return err
	}

	if err := s.checkAccounts(ctx, t); err != nil {
		return err
	}

	if !old.Planned {
		if err := s.applyEffects(ctx, old, -1); err != nil {
			return err
		}
	}

	t.UserID = old.UserID
	t.CreatedAt = old.CreatedAt
	if err := s.repo.Update(ctx, t); err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	if !t.Planned {
		if err := s.applyEffects(ctx, t, 1); err != nil {
			return err
		}
	}

	return nil
}

// Delete removes a transaction and reverts its balance effects
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	t, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if !t.Planned {
		return s.applyEffects(ctx, t, -1)
	}

	return nil
}

// Settle marks a planned transaction as settled and applies its balance
// effects
func (s *Service) Settle(ctx context.Context, userID, id uuid.UUID) error {
	t, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	if !t.Planned {
		return nil
	}

	t.Planned = false
	if err := s.repo.Update(ctx, t); err != nil {
		return fmt.Errorf("failed to settle transaction: %w", err)
	}

	return s.applyEffects(ctx, t, 1)
}

func (s *Service) checkAccounts(ctx context.Context, t *Transaction) error {
	src, err := s.accounts.GetByID(ctx, t.SourceAccountID)
	if err != nil {
		return err
	}
	if src.UserID != t.UserID {
		return account.ErrNotOwner
	}

	if t.Type == TypeTransfer {
		dst, err := s.accounts.GetByID(ctx, *t.DestinationAccountID)
		if err != nil {
			return err
		}
		if dst.UserID != t.UserID {
			return account.ErrNotOwner
		}
	}

	return nil
}

func (s *Service) applyEffects(ctx context.Context, t *Transaction, sign int64) error {
	for accountID, delta := range t.BalanceEffects() {
		if err := s.accounts.AdjustBalance(ctx, accountID, sign*delta); err != nil {
			return fmt.Errorf("failed to adjust balance of account %s: %w", accountID, err)
		}
	}
	return nil
}
