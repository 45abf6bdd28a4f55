package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool sizing for a single-instance bookkeeping API: the workload is a
// handful of short queries per request, so the pool stays small.
const (
	defaultMaxConns     = 10
	defaultMinConns     = 2
	defaultConnLifetime = 30 * time.Minute
	defaultConnIdleTime = 5 * time.Minute
)

// DB is the pgx connection pool shared by all repositories.
type DB struct {
	*pgxpool.Pool
}

// Config holds connection pool settings. Zero-valued fields fall back
// to the package defaults.
type Config struct {
	URL             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxConns <= 0 {
		c.MaxConns = defaultMaxConns
	}
	if c.MinConns <= 0 {
		c.MinConns = defaultMinConns
	}
	if c.MaxConnLifetime <= 0 {
		c.MaxConnLifetime = defaultConnLifetime
	}
	if c.MaxConnIdleTime <= 0 {
		c.MaxConnIdleTime = defaultConnIdleTime
	}
	return c
}

// NewPool opens a connection pool and verifies it with a ping.
func NewPool(ctx context.Context, cfg Config) (*DB, error) {
	cfg = cfg.withDefaults()

	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close closes the pool
func (db *DB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// Health reports whether the database is reachable
func (db *DB) Health(ctx context.Context) error {
	return db.Ping(ctx)
}
