package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/finbook/finbook/internal/platform/rates"
	"github.com/finbook/finbook/pkg/logger"
)

const (
	// DefaultTTL keeps a rate table cached for one hour, matching the
	// default refresh interval.
	DefaultTTL = time.Hour

	// KeyPrefix is the prefix for rate table cache keys
	KeyPrefix = "rates:"
)

// RateCache is a Redis-backed cache of exchange rate tables, keyed by
// base currency
type RateCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

// NewRateCache creates a new rate table cache
func NewRateCache(client *redis.Client, log *logger.Logger) *RateCache {
	return NewRateCacheWithTTL(client, DefaultTTL, log)
}

// NewRateCacheWithTTL creates a new rate table cache with a custom TTL
func NewRateCacheWithTTL(client *redis.Client, ttl time.Duration, log *logger.Logger) *RateCache {
	return &RateCache{
		client: client,
		ttl:    ttl,
		logger: log.WithField("component", "rate_cache"),
	}
}

// cachedTable is the wire form of a rate table. Decimals are serialized
// as strings to survive the JSON round trip without precision loss.
type cachedTable struct {
	Base  string            `json:"base"`
	AsOf  time.Time         `json:"as_of"`
	Rates map[string]string `json:"rates"`
}

// Get retrieves a cached rate table for the base currency
func (c *RateCache) Get(ctx context.Context, base string) (*rates.Table, bool, error) {
	key := KeyPrefix + base

	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		c.logger.Debug("cache miss", "base", base)
		return nil, false, nil
	}
	if err != nil {
		c.logger.Error("cache error", "operation", "get", "base", base, "error", err)
		return nil, false, fmt.Errorf("failed to get cached rate table: %w", err)
	}

	var cached cachedTable
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached rate table: %w", err)
	}

	t := &rates.Table{
		Base:  cached.Base,
		AsOf:  cached.AsOf,
		Rates: make(map[string]decimal.Decimal, len(cached.Rates)),
	}
	for code, raw := range cached.Rates {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, false, fmt.Errorf("failed to parse cached rate for %s: %w", code, err)
		}
		t.Rates[code] = d
	}

	c.logger.Debug("cache hit", "base", base)
	return t, true, nil
}

// Set stores a rate table in the cache
func (c *RateCache) Set(ctx context.Context, t *rates.Table) error {
	key := KeyPrefix + t.Base

	cached := cachedTable{
		Base:  t.Base,
		AsOf:  t.AsOf,
		Rates: make(map[string]string, len(t.Rates)),
	}
	for code, d := range t.Rates {
		cached.Rates[code] = d.String()
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("failed to marshal rate table: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Error("cache error", "operation", "set", "base", t.Base, "error", err)
		return fmt.Errorf("failed to set cached rate table: %w", err)
	}

	return nil
}

// Delete removes a cached rate table
func (c *RateCache) Delete(ctx context.Context, base string) error {
	return c.client.Del(ctx, KeyPrefix+base).Err()
}
