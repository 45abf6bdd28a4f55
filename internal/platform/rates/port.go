package rates

import "context"

// Repository persists the latest rate table for cold starts
type Repository interface {
	// Save stores a rate table, replacing any previous one for the base
	Save(ctx context.Context, t *Table) error

	// GetLatest retrieves the most recently saved table for the base,
	// returning ErrTableMissing when none exists
	GetLatest(ctx context.Context, base string) (*Table, error)
}

// Cache caches the rate table between refreshes
type Cache interface {
	Get(ctx context.Context, base string) (*Table, bool, error)
	Set(ctx context.Context, t *Table) error
}

// Provider fetches current rates from an external source
type Provider interface {
	FetchLatest(ctx context.Context, base string) (*Table, error)
}
