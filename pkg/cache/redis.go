package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// New returns a redis client for the given address, or nil when addr is
// empty (caching disabled). Callers must tolerate a nil client.
func New(addr string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr})
}

// GetJSON fetches a cached value into dst via the provided unmarshal func.
// Returns false on miss or any redis error; cache failures are never fatal.
func GetJSON(ctx context.Context, rdb *redis.Client, key string, unmarshal func([]byte) error) bool {
	if rdb == nil {
		return false
	}
	data, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return unmarshal(data) == nil
}

// SetJSON stores a serialized value with a TTL. Errors are ignored: the
// database stays the source of truth.
func SetJSON(ctx context.Context, rdb *redis.Client, key string, data []byte, ttl time.Duration) {
	if rdb == nil {
		return
	}
	rdb.Set(ctx, key, data, ttl)
}

// Del drops keys, typically on write-through invalidation.
func Del(ctx context.Context, rdb *redis.Client, keys ...string) {
	if rdb == nil {
		return
	}
	rdb.Del(ctx, keys...)
}
