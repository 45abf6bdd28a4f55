package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbook/finbook/internal/platform/account"
)

// AccountRepository implements the repository interface using PostgreSQL
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL account repository
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, user_id, name, currency, balance, is_liability, hidden, display_order, created_at, updated_at`

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("invalid account: %w", err)
	}

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		a.ID,
		a.UserID,
		a.Name,
		a.Currency,
		a.Balance,
		a.IsLiability,
		a.Hidden,
		a.DisplayOrder,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return account.ErrDuplicateName
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	a, err := scanAccount(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, account.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return a, nil
}

// GetByUserID retrieves all accounts for a user ordered by display order
func (r *AccountRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*account.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE user_id = $1
		ORDER BY display_order, created_at
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}

	return accounts, rows.Err()
}

// Update updates an existing account
func (r *AccountRepository) Update(ctx context.Context, a *account.Account) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("invalid account: %w", err)
	}

	query := `
		UPDATE accounts
		SET name = $2, currency = $3, balance = $4, is_liability = $5, hidden = $6, display_order = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		a.ID,
		a.Name,
		a.Currency,
		a.Balance,
		a.IsLiability,
		a.Hidden,
		a.DisplayOrder,
		a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return account.ErrDuplicateName
		}
		return fmt.Errorf("failed to update account: %w", err)
	}

	if result.RowsAffected() == 0 {
		return account.ErrAccountNotFound
	}

	return nil
}

// Delete deletes an account
func (r *AccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	if result.RowsAffected() == 0 {
		return account.ErrAccountNotFound
	}

	return nil
}

// AdjustBalance atomically adds delta to the account balance
func (r *AccountRepository) AdjustBalance(ctx context.Context, id uuid.UUID, delta int64) error {
	query := `
		UPDATE accounts
		SET balance = balance + $2, updated_at = now()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust balance: %w", err)
	}

	if result.RowsAffected() == 0 {
		return account.ErrAccountNotFound
	}

	return nil
}

// ExistsByUserAndName checks whether the user already has an account with the name
func (r *AccountRepository) ExistsByUserAndName(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE user_id = $1 AND name = $2)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, userID, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}

	return exists, nil
}

func scanAccount(row pgx.Row) (*account.Account, error) {
	var a account.Account
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Name,
		&a.Currency,
		&a.Balance,
		&a.IsLiability,
		&a.Hidden,
		&a.DisplayOrder,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
