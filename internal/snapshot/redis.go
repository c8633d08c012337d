package snapshot

import (
	"context"
	"time"

	"github.com/angelmondragon/shopcart-backend/pkg/redis"
)

type redisClient interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Ping(ctx context.Context) error
}

var _ redisClient = (*redis.Client)(nil)

// RedisStore writes snapshots as plain redis strings.
type RedisStore struct {
	client redisClient
	ttl    time.Duration
}

// NewRedisStore wraps client. A zero ttl keeps keys until overwritten.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	return r.client.Get(ctx, key)
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, r.ttl)
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}
