package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbook/finbook/internal/platform/category"
)

// CategoryRepository implements the repository interface using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new PostgreSQL category repository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoryColumns = `id, user_id, name, kind, hidden, display_order, created_at, updated_at`

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, c *category.Category) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid category: %w", err)
	}

	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		c.ID,
		c.UserID,
		c.Name,
		c.Kind,
		c.Hidden,
		c.DisplayOrder,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return category.ErrDuplicateName
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	c, err := scanCategory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return c, nil
}

// GetByUserID retrieves all categories for a user ordered by display order
func (r *CategoryRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*category.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE user_id = $1
		ORDER BY display_order, created_at
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*category.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// Update updates an existing category
func (r *CategoryRepository) Update(ctx context.Context, c *category.Category) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid category: %w", err)
	}

	query := `
		UPDATE categories
		SET name = $2, kind = $3, hidden = $4, display_order = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		c.ID,
		c.Name,
		c.Kind,
		c.Hidden,
		c.DisplayOrder,
		c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return category.ErrDuplicateName
		}
		return fmt.Errorf("failed to update category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return category.ErrCategoryNotFound
	}

	return nil
}

// Delete deletes a category
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return category.ErrCategoryNotFound
	}

	return nil
}

// ExistsByUserAndName checks whether the user already has a category with the name
func (r *CategoryRepository) ExistsByUserAndName(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE user_id = $1 AND name = $2)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, userID, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category existence: %w", err)
	}

	return exists, nil
}

func scanCategory(row pgx.Row) (*category.Category, error) {
	var c category.Category
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&c.Kind,
		&c.Hidden,
		&c.DisplayOrder,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
