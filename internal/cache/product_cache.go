package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/bits-and-blooms/bloom/v3"

	"socialmall/internal/model"
	"socialmall/internal/monitor"
	"socialmall/internal/repository"
	"socialmall/pkg/log"
	"socialmall/pkg/utils"
)

const cacheName = "product"

// ProductCache read-through product cache. Level 1 is an in-process
// bigcache; a bloom filter over known product IDs stops lookups for
// IDs that were never created from reaching the database.
type ProductCache struct {
	local    *bigcache.BigCache
	filter   *bloom.BloomFilter
	products repository.ProductRepository

	mu sync.RWMutex
}

// NewProductCache creates a product cache with the given local TTL
func NewProductCache(products repository.ProductRepository, ttl time.Duration) (*ProductCache, error) {
	local, err := bigcache.New(context.Background(), bigcache.DefaultConfig(ttl))
	if err != nil {
		return nil, fmt.Errorf("failed to create local cache: %w", err)
	}

	return &ProductCache{
		local:    local,
		filter:   bloom.NewWithEstimates(100000, 0.01),
		products: products,
	}, nil
}

// Warm seeds the bloom filter from the catalog. Run at startup; new
// products are added as they are created.
func (c *ProductCache) Warm(ctx context.Context) error {
	const pageSize = 500

	c.mu.Lock()
	defer c.mu.Unlock()

	for page := 1; ; page++ {
		products, total, err := c.products.List(ctx, false, page, pageSize)
		if err != nil {
			return err
		}
		for _, p := range products {
			c.filter.Add(idKey(p.ID))
		}
		if int64(page*pageSize) >= total {
			break
		}
	}

	log.Info("Product cache warmed")
	return nil
}

// Track registers a newly created product ID with the bloom filter
func (c *ProductCache) Track(productID uint64) {
	c.mu.Lock()
	c.filter.Add(idKey(productID))
	c.mu.Unlock()
}

// GetProduct returns the product, from the local cache when possible.
// An ID the bloom filter has never seen is rejected without touching
// the database.
func (c *ProductCache) GetProduct(ctx context.Context, id uint64) (*model.Product, error) {
	c.mu.RLock()
	known := c.filter.Test(idKey(id))
	c.mu.RUnlock()
	if !known {
		monitor.Default().RecordCacheHit(cacheName)
		return nil, utils.ErrProductNotFound
	}

	key := cacheKey(id)
	if data, err := c.local.Get(key); err == nil {
		var product model.Product
		if err := json.Unmarshal(data, &product); err == nil {
			monitor.Default().RecordCacheHit(cacheName)
			return &product, nil
		}
	}
	monitor.Default().RecordCacheMiss(cacheName)

	product, err := c.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(product); err == nil {
		if err := c.local.Set(key, data); err != nil {
			log.WithError(err).Warn("product cache set failed")
		}
	}
	return product, nil
}

// Invalidate drops a product from the local cache after an update
func (c *ProductCache) Invalidate(productID uint64) {
	// bigcache returns an error for missing keys, nothing to do then
	_ = c.local.Delete(cacheKey(productID))
}

func cacheKey(id uint64) string {
	return fmt.Sprintf("product:%d", id)
}

func idKey(id uint64) []byte {
	return []byte(fmt.Sprintf("%d", id))
}
