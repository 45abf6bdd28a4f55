// Package testdb starts a disposable Postgres container with the
// project migrations applied, for repository integration tests.
package testdb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	image  = "postgres:16-alpine"
	dbName = "finbook_test"
	dbUser = "test"
	dbPass = "test"
)

// allTables lists every table the migrations create, dependents first.
var allTables = []string{
	"transactions",
	"categories",
	"accounts",
	"exchange_rates",
	"users",
}

// TestDB is a running Postgres container plus a connected pool.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// NewTestDB starts a container and applies all up migrations.
func NewTestDB(ctx context.Context) (*TestDB, error) {
	scripts, err := upMigrations()
	if err != nil {
		return nil, err
	}

	container, err := postgres.Run(ctx,
		image,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPass),
		postgres.WithInitScripts(scripts...),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(120*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &TestDB{
		Container: container,
		Pool:      pool,
		ConnStr:   connStr,
	}, nil
}

// Reset empties every table so tests start from a clean ledger.
func (db *TestDB) Reset(ctx context.Context) error {
	stmt := "TRUNCATE TABLE " + strings.Join(allTables, ", ") + " CASCADE"
	if _, err := db.Pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("failed to reset database: %w", err)
	}
	return nil
}

// Close releases the pool and terminates the container.
func (db *TestDB) Close(ctx context.Context) error {
	if db.Pool != nil {
		db.Pool.Close()
	}
	if db.Container != nil {
		return db.Container.Terminate(ctx)
	}
	return nil
}

// upMigrations returns the *.up.sql files under migrations/ in apply
// order, located relative to this source file.
func upMigrations() ([]string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return nil, fmt.Errorf("failed to locate caller source file")
	}

	dir := filepath.Join(filepath.Dir(filepath.Dir(filepath.Dir(filename))), "migrations")

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory %s: %w", dir, err)
	}

	var scripts []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".up.sql") {
			scripts = append(scripts, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(scripts)

	if len(scripts) == 0 {
		return nil, fmt.Errorf("no up migrations found in %s", dir)
	}

	return scripts, nil
}
