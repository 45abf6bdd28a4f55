package transaction

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for transaction persistence operations
type Repository interface {
	// Create creates a new transaction
	Create(ctx context.Context, t *Transaction) error

	// GetByID retrieves a transaction by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// List retrieves transactions for a user matching the filter,
	// newest first
	List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Transaction, error)

	// ListByTimeRange retrieves all transactions for a user with
	// Time in [start, end], oldest first
	ListByTimeRange(ctx context.Context, userID uuid.UUID, start, end int64) ([]*Transaction, error)

	// Update updates an existing transaction
	Update(ctx context.Context, t *Transaction) error

	// Delete deletes a transaction
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByAccount counts transactions referencing the account
	CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
}
