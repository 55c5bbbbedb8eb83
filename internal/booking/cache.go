package booking

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nekogravitycat/banquet-calendar/internal/metrics"
)

const listCacheKey = "bookings:list"

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// RedisCache implements Cache on a redis client. Keys are namespaced by prefix.
type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}
	return c.client.Del(ctx, full...).Err()
}

type cachedRepository struct {
	Repository
	cache Cache
	ttl   time.Duration
	log   *zap.Logger
}

// NewCachedRepository keeps the full booking list in cache for ttl. Writes
// go straight through and drop the cached list. Cache failures are logged
// and fall back to the wrapped repository.
func NewCachedRepository(repo Repository, cache Cache, ttl time.Duration, log *zap.Logger) Repository {
	return &cachedRepository{Repository: repo, cache: cache, ttl: ttl, log: log}
}

func (r *cachedRepository) List(ctx context.Context) ([]Booking, error) {
	raw, ok, err := r.cache.Get(ctx, listCacheKey)
	if err != nil {
		r.log.Warn("booking cache read failed", zap.Error(err))
	}
	if ok {
		var list []Booking
		if err := json.Unmarshal(raw, &list); err == nil {
			metrics.IncCacheHit()
			return list, nil
		}
		r.log.Warn("booking cache entry corrupt, refetching")
	}
	metrics.IncCacheMiss()

	list, err := r.Repository.List(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(list); err == nil {
		if err := r.cache.Set(ctx, listCacheKey, raw, r.ttl); err != nil {
			r.log.Warn("booking cache write failed", zap.Error(err))
		}
	}
	return list, nil
}

func (r *cachedRepository) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	b, err := r.Repository.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return b, nil
}

func (r *cachedRepository) Update(ctx context.Context, id string, req UpdateRequest) (*Booking, error) {
	b, err := r.Repository.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return b, nil
}

func (r *cachedRepository) Delete(ctx context.Context, id string) error {
	if err := r.Repository.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *cachedRepository) invalidate(ctx context.Context) {
	if err := r.cache.Delete(ctx, listCacheKey); err != nil {
		r.log.Warn("booking cache invalidation failed", zap.Error(err))
	}
}
