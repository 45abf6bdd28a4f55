package rates_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbook/finbook/internal/platform/rates"
	"github.com/finbook/finbook/pkg/logger"
)

type stubRepo struct {
	saved  *rates.Table
	latest *rates.Table
	err    error
}

func (s *stubRepo) Save(ctx context.Context, t *rates.Table) error {
	s.saved = t
	return nil
}

func (s *stubRepo) GetLatest(ctx context.Context, base string) (*rates.Table, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.latest, nil
}

type stubCache struct {
	table *rates.Table
	sets  int
}

func (s *stubCache) Get(ctx context.Context, base string) (*rates.Table, bool, error) {
	return s.table, s.table != nil, nil
}

func (s *stubCache) Set(ctx context.Context, t *rates.Table) error {
	s.table = t
	s.sets++
	return nil
}

type stubProvider struct {
	table   *rates.Table
	err     error
	fetches int
}

func (s *stubProvider) FetchLatest(ctx context.Context, base string) (*rates.Table, error) {
	s.fetches++
	if s.err != nil {
		return nil, s.err
	}
	return s.table, nil
}

func freshTable() *rates.Table {
	return &rates.Table{
		Base: "USD",
		AsOf: time.Now(),
		Rates: map[string]decimal.Decimal{
			"EUR": decimal.RequireFromString("0.93"),
		},
	}
}

func newTestService(repo *stubRepo, cache *stubCache, provider *stubProvider) *rates.Service {
	return rates.NewService(repo, cache, provider, "USD", logger.NewDefault("test"))
}

func TestRatesService_TablePrefersCache(t *testing.T) {
	cached := freshTable()
	provider := &stubProvider{table: freshTable()}

	svc := newTestService(&stubRepo{}, &stubCache{table: cached}, provider)

	got, err := svc.Table(context.Background())
	require.NoError(t, err)
	assert.Same(t, cached, got)
	assert.Zero(t, provider.fetches)
}

func TestRatesService_TableRefreshesOnCacheMiss(t *testing.T) {
	fresh := freshTable()
	repo := &stubRepo{}
	cache := &stubCache{}
	provider := &stubProvider{table: fresh}

	svc := newTestService(repo, cache, provider)

	got, err := svc.Table(context.Background())
	require.NoError(t, err)
	assert.Same(t, fresh, got)

	// the refreshed table is cached and persisted
	assert.Same(t, fresh, cache.table)
	assert.Same(t, fresh, repo.saved)
}

func TestRatesService_TableFallsBackToPersisted(t *testing.T) {
	persisted := freshTable()
	repo := &stubRepo{latest: persisted}
	provider := &stubProvider{err: errors.New("provider down")}

	svc := newTestService(repo, &stubCache{}, provider)

	got, err := svc.Table(context.Background())
	require.NoError(t, err)
	assert.Same(t, persisted, got)
}

func TestRatesService_TableErrorsWhenNothingAvailable(t *testing.T) {
	repo := &stubRepo{err: rates.ErrTableMissing}
	provider := &stubProvider{err: errors.New("provider down")}

	svc := newTestService(repo, &stubCache{}, provider)

	_, err := svc.Table(context.Background())
	assert.Error(t, err)
}
