package rates

import (
	"context"
	"fmt"
	"time"

	"github.com/finbook/finbook/pkg/logger"
)

// Service provides exchange rate tables with layered lookup:
// cache first, then the persisted table, then the external provider.
type Service struct {
	repo     Repository
	cache    Cache
	provider Provider
	base     string
	log      *logger.Logger
}

// NewService creates a new rates service
func NewService(repo Repository, cache Cache, provider Provider, base string, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		provider: provider,
		base:     base,
		log:      log.WithField("component", "rates"),
	}
}

// Table returns the current rate table. A cached table is preferred; a
// persisted table is served while the provider is unreachable.
func (s *Service) Table(ctx context.Context) (*Table, error) {
	if s.cache != nil {
		t, found, err := s.cache.Get(ctx, s.base)
		if err != nil {
			s.log.Warn("rate cache lookup failed", "error", err)
		} else if found {
			return t, nil
		}
	}

	t, err := s.Refresh(ctx)
	if err == nil {
		return t, nil
	}
	s.log.Warn("rate refresh failed, falling back to persisted table", "error", err)

	if s.repo != nil {
		t, repoErr := s.repo.GetLatest(ctx, s.base)
		if repoErr == nil {
			return t, nil
		}
	}

	return nil, fmt.Errorf("failed to obtain rate table: %w", err)
}

// Refresh fetches fresh rates from the provider, then caches and
// persists them
func (s *Service) Refresh(ctx context.Context) (*Table, error) {
	if s.provider == nil {
		return nil, ErrTableMissing
	}

	t, err := s.provider.FetchLatest(ctx, s.base)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, t); err != nil {
			s.log.Warn("failed to cache rate table", "error", err)
		}
	}

	if s.repo != nil {
		if err := s.repo.Save(ctx, t); err != nil {
			s.log.Warn("failed to persist rate table", "error", err)
		}
	}

	s.log.Info("rate table refreshed", "base", t.Base, "currencies", len(t.Rates))
	return t, nil
}

// StartRefresher refreshes rates on the given interval until the context
// is canceled
func (s *Service) StartRefresher(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.Refresh(ctx); err != nil {
					s.log.Error("scheduled rate refresh failed", "error", err)
				}
			}
		}
	}()
}
