package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/OJOMB/user-registry/internal/core/domain"
)

const defaultCacheTTL = 5 * time.Minute

// UserCache is a read-through cache of users keyed by id, backed by Redis.
// Key format: user:<uuid>
type UserCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewUserCache creates a UserCache wrapping the given Redis client.
func NewUserCache(client *redis.Client, ttl time.Duration) *UserCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &UserCache{client: client, ttl: ttl}
}

// Get returns the cached user, or (nil, nil) on a miss.
func (c *UserCache) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	payload, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &user, nil
}

// Set stores the user for the configured TTL.
func (c *UserCache) Set(ctx context.Context, user *domain.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(user.ID), payload, c.ttl).Err()
}

// Invalidate removes the cached entry for the given id.
func (c *UserCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *UserCache) key(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id)
}
