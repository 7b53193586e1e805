package cache

import (
	"context"
	"sync"
	"time"

	"catalog/internal/models"
)

// InMemorySnapshotCache is a thread-safe, in-memory SnapshotCache with TTL
// expiry. It is used in tests and for cache-less development runs.
type InMemorySnapshotCache struct {
	mu        sync.RWMutex
	products  []models.Product
	populated bool
	expiresAt time.Time
	ttl       time.Duration
}

// NewInMemorySnapshotCache creates an in-memory snapshot cache.
func NewInMemorySnapshotCache(ttl time.Duration) *InMemorySnapshotCache {
	return &InMemorySnapshotCache{ttl: ttl}
}

// Fetch returns the snapshot, or a miss once the TTL has lapsed.
func (c *InMemorySnapshotCache) Fetch(ctx context.Context) Lookup {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.populated || time.Now().After(c.expiresAt) {
		return Miss()
	}
	snapshot := make([]models.Product, len(c.products))
	copy(snapshot, c.products)
	return Hit(snapshot)
}

// Store overwrites the snapshot and resets the expiry.
func (c *InMemorySnapshotCache) Store(ctx context.Context, products []models.Product) error {
	snapshot := make([]models.Product, len(products))
	copy(snapshot, products)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = snapshot
	c.populated = true
	c.expiresAt = time.Now().Add(c.ttl)
	return nil
}

// Delete clears the snapshot.
func (c *InMemorySnapshotCache) Delete(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = nil
	c.populated = false
	return nil
}

// Close is a no-op.
func (c *InMemorySnapshotCache) Close() error {
	return nil
}
