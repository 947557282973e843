package cache

import (
	"context"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/viccon/sturdyc"
)

// FetchFn is the function signature Store expects when fetching from the
// source of truth.
type FetchFn[T any] func(ctx context.Context) (T, error)

// Store exposes the read-through caching operations the data-access layer
// needs. Reads register under a tag; Invalidate marks every read registered
// under the given tags stale by deleting exactly those keys.
type Store interface {
	GetOrFetch(ctx context.Context, tag Tag, key string, fetchFn func(ctx context.Context) (any, error)) (any, error)
	Invalidate(tags ...Tag)
}

// GetOrFetch is a type-safe wrapper around Store.GetOrFetch.
func GetOrFetch[T any](ctx context.Context, store Store, tag Tag, key string, fetchFn FetchFn[T]) (T, error) {
	result, err := store.GetOrFetch(ctx, tag, key, func(ctx context.Context) (any, error) {
		return fetchFn(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result.(T), nil
}

// Options tunes the sturdyc-backed store.
type Options struct {
	Capacity int
	Shards   int
	TTL      time.Duration
}

// DefaultOptions returns sensible defaults for the in-process read cache.
func DefaultOptions() Options {
	return Options{
		Capacity: 10000,
		Shards:   64,
		TTL:      5 * time.Minute,
	}
}

// sturdycStore caches read results in a sturdyc client and tracks which full
// keys are live under each tag so invalidation can delete exactly those. Each
// registered key carries the time it was last read, which bounds registry
// growth: an entry untouched for longer than the TTL has expired from the
// cache and can be dropped from the registry.
type sturdycStore struct {
	client *sturdyc.Client[any]
	keys   *xsync.MapOf[Tag, *xsync.MapOf[string, time.Time]]
	ttl    time.Duration
}

// NewStore constructs the default Store implementation.
func NewStore(opts Options) Store {
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultOptions().Capacity
	}
	if opts.Shards <= 0 {
		opts.Shards = DefaultOptions().Shards
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultOptions().TTL
	}

	const evictionPercentage = 10
	return &sturdycStore{
		client: sturdyc.New[any](opts.Capacity, opts.Shards, opts.TTL, evictionPercentage),
		keys:   xsync.NewMapOf[Tag, *xsync.MapOf[string, time.Time]](),
		ttl:    opts.TTL,
	}
}

// GetOrFetch returns the cached value for (tag, key) or executes fetchFn and
// caches its result. The key is registered under the tag before fetching so a
// concurrent invalidation cannot miss it.
func (s *sturdycStore) GetOrFetch(ctx context.Context, tag Tag, key string, fetchFn func(ctx context.Context) (any, error)) (any, error) {
	fullKey := string(tag) + KeySeparator + key
	s.trackKey(tag, fullKey)
	return s.client.GetOrFetch(ctx, fullKey, fetchFn)
}

// Invalidate deletes every key registered under any of the given tags.
// Keys under unrelated tags are untouched; calling it twice is a no-op the
// second time.
func (s *sturdycStore) Invalidate(tags ...Tag) {
	s.pruneExpired()
	for _, tag := range tags {
		set, ok := s.keys.Load(tag)
		if !ok {
			continue
		}
		set.Range(func(fullKey string, _ time.Time) bool {
			s.client.Delete(fullKey)
			set.Delete(fullKey)
			return true
		})
	}
}

func (s *sturdycStore) trackKey(tag Tag, fullKey string) {
	set, _ := s.keys.LoadOrCompute(tag, func() *xsync.MapOf[string, time.Time] {
		return xsync.NewMapOf[string, time.Time]()
	})
	set.Store(fullKey, time.Now())
}

// pruneExpired drops registry entries whose cached value has certainly
// expired. A key is re-tracked on every read, so a tracking timestamp older
// than the TTL means there is nothing left in the cache to invalidate for it.
func (s *sturdycStore) pruneExpired() {
	cutoff := time.Now().Add(-s.ttl)
	s.keys.Range(func(_ Tag, set *xsync.MapOf[string, time.Time]) bool {
		set.Range(func(fullKey string, trackedAt time.Time) bool {
			if trackedAt.Before(cutoff) {
				set.Delete(fullKey)
			}
			return true
		})
		return true
	})
}
