package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)

// RedisStore is a fixed-window limiter shared across replicas.
// Each key counts in a window bucket that expires on its own.
type RedisStore struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewRedisStore builds a limiter allowing limit events per window.
func NewRedisStore(client *redis.Client, limit int, window time.Duration) *RedisStore {
	return &RedisStore{client: client, limit: limit, window: window}
}

// Allow implements Store. INCR and EXPIRE run in one pipeline; the EXPIRE
// is repeated every hit, which only ever lengthens the window slightly.
func (s *RedisStore) Allow(ctx context.Context, key string) (bool, error) {
	rkey := "ratelimit:" + key

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, rkey)
	pipe.Expire(ctx, rkey, s.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("ratelimit incr: %w", err)
	}
	return incr.Val() <= int64(s.limit), nil
}
