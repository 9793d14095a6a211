package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CounterStore implements ports.CounterStore on Redis. INCR makes the
// increment-and-read atomic across instances; EXPIRE NX starts the
// window only on the first hit so later calls cannot slide it.
type CounterStore struct {
	client *redis.Client
}

func NewCounterStore(client *redis.Client) *CounterStore {
	return &CounterStore{client: client}
}

// Increment bumps the counter for key and returns the post-increment
// count and the remaining window time.
func (s *CounterStore) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	pttl := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, fmt.Errorf("counter increment: %w", err)
	}

	ttl := pttl.Val()
	if ttl < 0 {
		ttl = window
	}
	return incr.Val(), ttl, nil
}
