// Package registry caches property descriptors per entity type.
//
// Extraction is deterministic, so a descriptor set is built at most once per
// entity type and shared by all callers. Concurrent first requests for the
// same type wait on a single extraction.
package registry

import (
	"context"
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/syssam/entityreader"
	"github.com/syssam/entityreader/property"
)

// Extractor builds the descriptors of one entity type.
// *reader.Reader implements it.
type Extractor interface {
	Extract(entity string) (map[string]*property.Descriptor, error)
}

// Registry is safe for concurrent use. Failed extractions are not cached.
type Registry struct {
	ext     Extractor
	logger  *slog.Logger
	workers int
	cache   Cache
	ttl     time.Duration

	group singleflight.Group
	mu    sync.RWMutex
	sets  map[string]map[string]*property.Descriptor
}

type config struct {
	logger  *slog.Logger
	workers int
	cache   Cache
	ttl     time.Duration
}

// Option configures a Registry.
type Option func(*config) error

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) error {
		if l == nil {
			return entityreader.NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.logger = l
		return nil
	}
}

// WithWorkers bounds the number of concurrent extractions run by Preload.
func WithWorkers(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return entityreader.NewConfigError("Workers", n, "workers must be at least 1")
		}
		c.workers = n
		return nil
	}
}

// WithCache adds a second level cache consulted before extraction. Sets are
// stored as MessagePack snapshots for ttl; zero means no expiry. Cache
// failures are logged and fall back to extraction.
func WithCache(c Cache, ttl time.Duration) Option {
	return func(cfg *config) error {
		if c == nil {
			return entityreader.NewConfigError("Cache", nil, "cache cannot be nil")
		}
		if ttl < 0 {
			return entityreader.NewConfigError("CacheTTL", ttl, "ttl cannot be negative")
		}
		cfg.cache, cfg.ttl = c, ttl
		return nil
	}
}

// New returns an empty Registry backed by ext.
func New(ext Extractor, opts ...Option) (*Registry, error) {
	if ext == nil {
		return nil, entityreader.NewConfigError("Extractor", nil, "extractor cannot be nil")
	}
	cfg := config{logger: slog.Default(), workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &Registry{
		ext:     ext,
		logger:  cfg.logger,
		workers: cfg.workers,
		cache:   cfg.cache,
		ttl:     cfg.ttl,
		sets:    make(map[string]map[string]*property.Descriptor),
	}, nil
}

// Descriptors returns the descriptor set of the entity type, extracting it on
// first use. The returned map is shared and must not be modified.
func (r *Registry) Descriptors(entity string) (map[string]*property.Descriptor, error) {
	return r.descriptors(context.Background(), entity)
}

func (r *Registry) descriptors(ctx context.Context, entity string) (map[string]*property.Descriptor, error) {
	r.mu.RLock()
	set, ok := r.sets[entity]
	r.mu.RUnlock()
	if ok {
		return set, nil
	}
	v, err, _ := r.group.Do(entity, func() (any, error) {
		r.mu.RLock()
		set, ok := r.sets[entity]
		r.mu.RUnlock()
		if ok {
			return set, nil
		}
		set, err := r.build(ctx, entity)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.sets[entity] = set
		r.mu.Unlock()
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]*property.Descriptor), nil
}

// build reads the set from the second level cache or extracts it.
func (r *Registry) build(ctx context.Context, entity string) (map[string]*property.Descriptor, error) {
	if r.cache != nil {
		set, err := r.fromCache(ctx, entity)
		switch {
		case err != nil:
			r.logger.Warn("descriptor cache read failed", "entity", entity, "error", err)
		case set != nil:
			r.logger.Debug("descriptors loaded from cache", "entity", entity, "properties", len(set))
			return set, nil
		}
	}
	set, err := r.ext.Extract(entity)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("descriptors built", "entity", entity, "properties", len(set))
	if r.cache != nil {
		if err := r.toCache(ctx, entity, set); err != nil {
			r.logger.Warn("descriptor cache write failed", "entity", entity, "error", err)
		}
	}
	return set, nil
}

// Lookup returns the descriptor of a single property.
func (r *Registry) Lookup(entity, name string) (*property.Descriptor, bool, error) {
	set, err := r.Descriptors(entity)
	if err != nil {
		return nil, false, err
	}
	d, ok := set[name]
	return d, ok, nil
}

// Preload extracts the given entity types concurrently. With no arguments it
// preloads every entity the extractor can list. The first failure cancels
// the remaining work and is returned.
func (r *Registry) Preload(ctx context.Context, entities ...string) error {
	if len(entities) == 0 {
		if l, ok := r.ext.(interface{ Entities() []string }); ok {
			entities = l.Entities()
		}
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for _, entity := range entities {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := r.descriptors(ctx, entity)
			return err
		})
	}
	return g.Wait()
}

// Entities returns the names of the cached entity types, sorted.
func (r *Registry) Entities() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.sets))
	for name := range r.sets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// All returns a copy of the cache keyed by entity type.
func (r *Registry) All() map[string]map[string]*property.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make(map[string]map[string]*property.Descriptor, len(r.sets))
	for k, v := range r.sets {
		all[k] = v
	}
	return all
}
