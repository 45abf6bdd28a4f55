package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finbook/finbook/internal/platform/rates"
)

// RatesRepository persists the latest rate table using PostgreSQL. One row
// per base currency, replaced on every refresh; rates are stored as JSONB.
type RatesRepository struct {
	pool *pgxpool.Pool
}

// NewRatesRepository creates a new PostgreSQL rates repository
func NewRatesRepository(pool *pgxpool.Pool) *RatesRepository {
	return &RatesRepository{pool: pool}
}

// Save stores a rate table, replacing any previous one for the base
func (r *RatesRepository) Save(ctx context.Context, t *rates.Table) error {
	payload, err := json.Marshal(t.Rates)
	if err != nil {
		return fmt.Errorf("failed to marshal rates: %w", err)
	}

	query := `
		INSERT INTO exchange_rates (base, as_of, rates)
		VALUES ($1, $2, $3)
		ON CONFLICT (base) DO UPDATE SET as_of = EXCLUDED.as_of, rates = EXCLUDED.rates
	`

	if _, err := r.pool.Exec(ctx, query, t.Base, t.AsOf, payload); err != nil {
		return fmt.Errorf("failed to save rate table: %w", err)
	}

	return nil
}

// GetLatest retrieves the most recently saved table for the base
func (r *RatesRepository) GetLatest(ctx context.Context, base string) (*rates.Table, error) {
	query := `SELECT base, as_of, rates FROM exchange_rates WHERE base = $1`

	t := &rates.Table{}
	var payload []byte

	err := r.pool.QueryRow(ctx, query, base).Scan(&t.Base, &t.AsOf, &payload)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, rates.ErrTableMissing
		}
		return nil, fmt.Errorf("failed to get rate table: %w", err)
	}

	t.Rates = make(map[string]decimal.Decimal)
	if err := json.Unmarshal(payload, &t.Rates); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rates: %w", err)
	}

	return t, nil
}
