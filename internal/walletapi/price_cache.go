package walletapi

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultPriceCacheMaxEntries = 100
	DefaultPriceCacheTTL        = 10 * time.Minute
)

// priceCache holds successful spot price lookups keyed by currency code.
// Entries expire after the TTL and the least recently used entry is evicted
// once the cache is full. Values are cloned on both store and load so cached
// entries never alias what callers hold.
type priceCache struct {
	cache *expirable.LRU[string, *SpotPrice]
}

func newPriceCache(maxEntries int, ttl time.Duration) (*priceCache, error) {
	if maxEntries <= 0 {
		return nil, fmt.Errorf("maxEntries must be greater than zero")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("ttl must be greater than zero")
	}

	return &priceCache{
		cache: expirable.NewLRU[string, *SpotPrice](maxEntries, nil, ttl),
	}, nil
}

func (c *priceCache) get(currency string) (*SpotPrice, bool) {
	price, ok := c.cache.Get(currency)
	if !ok {
		return nil, false
	}
	return price.clone(), true
}

func (c *priceCache) put(currency string, price *SpotPrice) {
	c.cache.Add(currency, price.clone())
}
