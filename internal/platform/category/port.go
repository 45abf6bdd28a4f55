package category

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for category persistence operations
type Repository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByUserAndName(ctx context.Context, userID uuid.UUID, name string) (bool, error)
}
