package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbook/finbook/internal/platform/transaction"
)

// TransactionRepository implements the repository interface using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new PostgreSQL transaction repository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, user_id, type, time, source_account_id, source_amount, destination_account_id, destination_amount, category_id, comment, planned, created_at, updated_at`

// Create creates a new transaction
func (r *TransactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		t.ID,
		t.UserID,
		t.Type,
		t.Time,
		t.SourceAccountID,
		t.SourceAmount,
		t.DestinationAccountID,
		t.DestinationAmount,
		t.CategoryID,
		t.Comment,
		t.Planned,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a transaction by ID
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	t, err := scanTransaction(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, transaction.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return t, nil
}

// List retrieves transactions for a user matching the filter, newest first
func (r *TransactionRepository) List(ctx context.Context, userID uuid.UUID, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1`)

	args := []any{userID}

	if filter.StartTime > 0 {
		args = append(args, filter.StartTime)
		fmt.Fprintf(&sb, " AND time >= $%d", len(args))
	}
	if filter.EndTime > 0 {
		args = append(args, filter.EndTime)
		fmt.Fprintf(&sb, " AND time <= $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		fmt.Fprintf(&sb, " AND type = $%d", len(args))
	}
	if filter.AccountID != uuid.Nil {
		args = append(args, filter.AccountID)
		fmt.Fprintf(&sb, " AND (source_account_id = $%d OR destination_account_id = $%d)", len(args), len(args))
	}
	if filter.CategoryID != uuid.Nil {
		args = append(args, filter.CategoryID)
		fmt.Fprintf(&sb, " AND category_id = $%d", len(args))
	}

	sb.WriteString(" ORDER BY time DESC, created_at DESC")

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}

	return r.queryTransactions(ctx, sb.String(), args...)
}

// ListByTimeRange retrieves all transactions for a user within [start, end], oldest first
func (r *TransactionRepository) ListByTimeRange(ctx context.Context, userID uuid.UUID, start, end int64) ([]*transaction.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND time >= $2 AND time <= $3
		ORDER BY time, created_at
	`

	return r.queryTransactions(ctx, query, userID, start, end)
}

// Update updates an existing transaction
func (r *TransactionRepository) Update(ctx context.Context, t *transaction.Transaction) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}

	query := `
		UPDATE transactions
		SET type = $2, time = $3, source_account_id = $4, source_amount = $5,
		    destination_account_id = $6, destination_amount = $7, category_id = $8,
		    comment = $9, planned = $10, updated_at = $11
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		t.ID,
		t.Type,
		t.Time,
		t.SourceAccountID,
		t.SourceAmount,
		t.DestinationAccountID,
		t.DestinationAmount,
		t.CategoryID,
		t.Comment,
		t.Planned,
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	if result.RowsAffected() == 0 {
		return transaction.ErrTransactionNotFound
	}

	return nil
}

// Delete deletes a transaction
func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if result.RowsAffected() == 0 {
		return transaction.ErrTransactionNotFound
	}

	return nil
}

// CountByAccount counts transactions referencing the account
func (r *TransactionRepository) CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM transactions
		WHERE source_account_id = $1 OR destination_account_id = $1
	`

	var count int64
	if err := r.pool.QueryRow(ctx, query, accountID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	return count, nil
}

func (r *TransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]*transaction.Transaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, t)
	}

	return txs, rows.Err()
}

func scanTransaction(row pgx.Row) (*transaction.Transaction, error) {
	var t transaction.Transaction
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Type,
		&t.Time,
		&t.SourceAccountID,
		&t.SourceAmount,
		&t.DestinationAccountID,
		&t.DestinationAmount,
		&t.CategoryID,
		&t.Comment,
		&t.Planned,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
