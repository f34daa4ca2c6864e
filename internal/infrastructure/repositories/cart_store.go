package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aswin1661/looms-petals/internal/cart"
)

// RedisCartStore implements cart.Store using Redis. Snapshots expire with
// the owning session's TTL so abandoned carts disappear on their own.
type RedisCartStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCartStore creates a new cart store
func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{
		client: client,
		prefix: "cart:",
		ttl:    ttl,
	}
}

// Load implements cart.Store
func (s *RedisCartStore) Load(ctx context.Context, sessionToken string) (cart.Cart, error) {
	data, err := s.client.Get(ctx, s.prefix+sessionToken).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return cart.New(), nil
		}
		return cart.Cart{}, fmt.Errorf("failed to load cart: %w", err)
	}
	return cart.Decode(data)
}

// Save implements cart.Store
func (s *RedisCartStore) Save(ctx context.Context, sessionToken string, c cart.Cart) error {
	data, err := c.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	return s.client.Set(ctx, s.prefix+sessionToken, data, s.ttl).Err()
}

// Drop implements cart.Store
func (s *RedisCartStore) Drop(ctx context.Context, sessionToken string) error {
	return s.client.Del(ctx, s.prefix+sessionToken).Err()
}
