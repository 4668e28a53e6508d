package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophrecipes/internal/client/cache"
	"github.com/dmitrijs2005/gophrecipes/internal/client/metrics"
	"github.com/dmitrijs2005/gophrecipes/internal/logging"
	"golang.org/x/sync/singleflight"
)

// queryCache is the read-through layer shared by the recipe and profile
// services. Concurrent misses on one key share a single load.
//
// Every invalidate bumps the key's generation. A load only stores its result
// when the generation it started under is still current, so a read racing a
// mutation cannot put the pre-mutation value back.
type queryCache struct {
	cache   cache.Cache
	group   singleflight.Group
	metrics *metrics.Metrics
	log     logging.Logger

	mu   sync.Mutex
	gens map[string]uint64
}

func newQueryCache(c cache.Cache, m *metrics.Metrics, log logging.Logger) *queryCache {
	return &queryCache{cache: c, metrics: m, log: log, gens: map[string]uint64{}}
}

func (q *queryCache) generation(key string) uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.gens[key]
}

func (q *queryCache) current(key string, gen uint64) bool {
	return q.generation(key) == gen
}

// store writes v under key unless key was invalidated after gen was taken.
// An invalidate landing during the write is caught by the second check and
// the value is dropped again.
func (q *queryCache) store(ctx context.Context, key string, gen uint64, v any, ttl time.Duration) {
	if !q.current(key, gen) {
		q.log.Debug(ctx, "dropping stale cache write", "key", key)
		return
	}
	if err := q.cache.Set(ctx, key, v, ttl); err != nil {
		q.log.Warn(ctx, "cache write failed", "key", key, "err", err)
		return
	}
	if !q.current(key, gen) {
		q.log.Debug(ctx, "dropping stale cache write", "key", key)
		if err := q.cache.Delete(ctx, key); err != nil {
			q.log.Warn(ctx, "cache invalidation failed", "keys", []string{key}, "err", err)
		}
	}
}

// fetch returns the cached value under key or loads, stores and returns it.
// Cache backend failures degrade to a miss; load errors are returned as is
// and never cached. The shared load is detached from the caller's
// cancellation; each caller stops waiting when its own ctx is done.
func fetch[T any](ctx context.Context, q *queryCache, name, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	var cached T
	ok, err := q.cache.Get(ctx, key, &cached)
	if err != nil {
		q.log.Warn(ctx, "cache read failed", "key", key, "err", err)
		ok = false
	}
	q.metrics.CacheLookup(name, ok)
	if ok {
		return cached, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := q.group.DoChan(key, func() (any, error) {
		gen := q.generation(key)
		loaded, err := load(loadCtx)
		if err != nil {
			return loaded, err
		}
		q.store(loadCtx, key, gen, loaded, ttl)
		return loaded, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// invalidate drops keys. Loads already in flight for them neither store
// their result nor get joined by later reads. Backend failures are logged
// only; the next read reloads.
func (q *queryCache) invalidate(ctx context.Context, keys ...string) {
	q.mu.Lock()
	for _, key := range keys {
		q.gens[key]++
		q.group.Forget(key)
	}
	q.mu.Unlock()

	if err := q.cache.Delete(ctx, keys...); err != nil {
		q.log.Warn(ctx, "cache invalidation failed", "keys", keys, "err", err)
	}
}
