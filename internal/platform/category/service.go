package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service handles category business logic
type Service struct {
	repo Repository
}

// NewService creates a new category service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new category
func (s *Service) Create(ctx context.Context, c *Category) error {
	if err := c.Validate(); err != nil {
		return err
	}

	exists, err := s.repo.ExistsByUserAndName(ctx, c.UserID, c.Name)
	if err != nil {
		return fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return ErrDuplicateName
	}

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	return s.repo.Create(ctx, c)
}

// Get retrieves a category owned by the user
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.UserID != userID {
		return nil, ErrNotOwner
	}
	return c, nil
}

// List retrieves all categories for a user
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Category, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// Update updates a category's name
func (s *Service) Update(ctx context.Context, userID uuid.UUID, c *Category) error {
	if err := c.Validate(); err != nil {
		return err
	}

	existing, err := s.Get(ctx, userID, c.ID)
	if err != nil {
		return err
	}

	existing.Name = c.Name
	return s.repo.Update(ctx, existing)
}

// SetHidden hides or unhides a category
func (s *Service) SetHidden(ctx context.Context, userID, id uuid.UUID, hidden bool) error {
	c, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	c.Hidden = hidden
	return s.repo.Update(ctx, c)
}

// Reorder assigns new display orders following the given ID sequence
func (s *Service) Reorder(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	for order, id := range ids {
		c, err := s.Get(ctx, userID, id)
		if err != nil {
			return err
		}

		c.DisplayOrder = order
		if err := s.repo.Update(ctx, c); err != nil {
			return fmt.Errorf("failed to reorder category %s: %w", id, err)
		}
	}
	return nil
}

// Delete deletes a category owned by the user
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
