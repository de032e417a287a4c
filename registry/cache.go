package registry

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/syssam/entityreader/export"
	"github.com/syssam/entityreader/property"
)

// Cache is a byte cache shared between registries, for example across
// processes. Users implement it with their preferred store (Redis,
// Memcached, disk).
type Cache interface {
	// Get retrieves a value. It returns nil, nil if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with an optional TTL. A zero ttl never expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CacheKey returns the cache key of an entity's descriptor set.
func CacheKey(entity string) string {
	return "entityreader:descriptors:" + entity
}

// fromCache decodes a cached descriptor set. A miss returns nil, nil.
func (r *Registry) fromCache(ctx context.Context, entity string) (map[string]*property.Descriptor, error) {
	buf, err := r.cache.Get(ctx, CacheKey(entity))
	if err != nil || buf == nil {
		return nil, err
	}
	snap, err := export.Decode(bytes.NewReader(buf), export.MsgPack)
	if err != nil {
		return nil, err
	}
	sets, err := snap.Descriptors()
	if err != nil {
		return nil, err
	}
	return sets[entity], nil
}

func (r *Registry) toCache(ctx context.Context, entity string, set map[string]*property.Descriptor) error {
	var buf bytes.Buffer
	snap := export.NewSnapshot(map[string]map[string]*property.Descriptor{entity: set})
	if err := snap.Encode(&buf, export.MsgPack); err != nil {
		return err
	}
	return r.cache.Set(ctx, CacheKey(entity), buf.Bytes(), r.ttl)
}

// MemoryCache is a Cache backed by a map. Expired entries are dropped on read.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value   []byte
	expires time.Time
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

// Get implements Cache.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	if !e.expires.IsZero() && time.Now().After(e.expires) {
		delete(c.entries, key)
		return nil, nil
	}
	return bytes.Clone(e.value), nil
}

// Set implements Cache.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := memoryEntry{value: bytes.Clone(value)}
	if ttl > 0 {
		e.expires = time.Now().Add(ttl)
	}
	c.entries[key] = e
	return nil
}
