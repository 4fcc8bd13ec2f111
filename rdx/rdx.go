package rdx

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Init connects the shared redis client. Cache reads tolerate a dead redis;
// callers fall through to mongo when a Get errors.
func Init(addr, password string) error {
	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return Conn.Ping(ctx).Err()
}

func Get(ctx context.Context, key string) (string, error) {
	return Conn.Get(ctx, key).Result()
}

func Set(ctx context.Context, key, val string, ttl time.Duration) error {
	return Conn.Set(ctx, key, val, ttl).Err()
}

func Del(ctx context.Context, keys ...string) error {
	return Conn.Del(ctx, keys...).Err()
}
