package account

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for account persistence operations
type Repository interface {
	// Create creates a new account
	Create(ctx context.Context, a *Account) error

	// GetByID retrieves an account by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// GetByUserID retrieves all accounts for a user ordered by display order
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*Account, error)

	// Update updates an existing account
	Update(ctx context.Context, a *Account) error

	// Delete deletes an account
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustBalance adds delta (minor units, may be negative) to the account balance
	AdjustBalance(ctx context.Context, id uuid.UUID, delta int64) error

	// ExistsByUserAndName checks whether the user already has an account with the name
	ExistsByUserAndName(ctx context.Context, userID uuid.UUID, name string) (bool, error)
}
