package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"ngo-directory-service/internal/domain"
	"ngo-directory-service/internal/platform/obs"
)

const redisKeyPrefix = "revgeo:"

// RedisReverseGeocodeCache keeps coordinate -> address mappings in Redis with a TTL.
type RedisReverseGeocodeCache struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

// A zero ttl keeps entries until evicted.
func NewRedisReverseGeocodeCache(rdb redis.UniversalClient, ttl time.Duration) *RedisReverseGeocodeCache {
	return &RedisReverseGeocodeCache{rdb: rdb, ttl: ttl}
}

func (r *RedisReverseGeocodeCache) Get(ctx context.Context, c domain.Coordinate) (_ string, _ bool, err error) {
	defer obs.Time(ctx, "geocode.redis.Get")(&err)

	addr, err := r.rdb.Get(ctx, redisKeyPrefix+Key(c)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get geocode cache: redis get: %w", err)
	}

	return addr, true, nil
}

func (r *RedisReverseGeocodeCache) Put(ctx context.Context, c domain.Coordinate, address string) error {
	if strings.TrimSpace(address) == "" {
		return fmt.Errorf("insert geocode cache: empty address for %s", c)
	}

	if err := r.rdb.Set(ctx, redisKeyPrefix+Key(c), address, r.ttl).Err(); err != nil {
		return fmt.Errorf("insert geocode cache: redis set: %w", err)
	}

	return nil
}
