package category

import (
	"time"

	"github.com/google/uuid"
)

// Kind tells whether a category classifies income or expense transactions
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Category represents a transaction category
type Category struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Name         string
	Kind         Kind
	Hidden       bool
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewCategory creates a new category for a user
func NewCategory(userID uuid.UUID, name string, kind Kind) *Category {
	now := time.Now()
	return &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Kind:      kind,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the category fields
func (c *Category) Validate() error {
	if c.Name == "" {
		return ErrInvalidName
	}

	if c.Kind != KindIncome && c.Kind != KindExpense {
		return ErrInvalidKind
	}

	return nil
}
