package cache

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/olegk04/weather-lookup/internal/weather"
)

// CachedForecastProvider wraps a ForecastProvider with a TTL response cache
// keyed by the provider-formatted query string. The provider permits caching
// forecast responses for a short window, so repeated searches for the same
// place inside the TTL never leave the process.
type CachedForecastProvider struct {
	source    weather.ForecastProvider
	cache     map[string]cacheEntry
	mutex     sync.RWMutex
	ttl       time.Duration
	hitCount  int
	missCount int
}

type cacheEntry struct {
	response weather.ForecastResponse
	storedAt time.Time
}

// NewCachedForecastProvider creates a caching wrapper around source.
func NewCachedForecastProvider(source weather.ForecastProvider, ttl time.Duration) *CachedForecastProvider {
	return &CachedForecastProvider{
		source: source,
		cache:  make(map[string]cacheEntry),
		ttl:    ttl,
	}
}

// Name returns the underlying provider name with a [Cached] suffix.
func (c *CachedForecastProvider) Name() string {
	return c.source.Name() + " [Cached]"
}

// FetchForecast serves from cache when a fresh entry exists, otherwise
// delegates to the underlying provider and stores the result. Errors are
// never cached.
func (c *CachedForecastProvider) FetchForecast(ctx context.Context, query string) (weather.ForecastResponse, error) {
	c.mutex.RLock()
	entry, found := c.cache[query]
	c.mutex.RUnlock()

	if found && time.Since(entry.storedAt) < c.ttl {
		c.mutex.Lock()
		c.hitCount++
		c.mutex.Unlock()
		return entry.response, nil
	}

	c.mutex.Lock()
	c.missCount++
	c.mutex.Unlock()

	resp, err := c.source.FetchForecast(ctx, query)
	if err != nil {
		return weather.ForecastResponse{}, err
	}

	c.mutex.Lock()
	c.cache[query] = cacheEntry{
		response: resp,
		storedAt: time.Now(),
	}
	c.mutex.Unlock()

	return resp, nil
}

// Prune drops expired entries and returns how many were removed.
func (c *CachedForecastProvider) Prune() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	removed := 0
	for key, entry := range c.cache {
		if time.Since(entry.storedAt) >= c.ttl {
			delete(c.cache, key)
			removed++
		}
	}
	if removed > 0 {
		log.Printf("INFO: forecast cache pruned %d expired entries", removed)
	}
	return removed
}

// Stats returns cache hit and miss counts.
func (c *CachedForecastProvider) Stats() (hits, misses int) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.hitCount, c.missCount
}

var _ weather.ForecastProvider = (*CachedForecastProvider)(nil)
