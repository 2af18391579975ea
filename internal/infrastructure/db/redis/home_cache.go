package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/horizonbank/banking-api/internal/core/ports"
)

// HomeCache caches the per-user accounts summary shown on the dashboard
// home view. Key format: home:<user_id>
type HomeCache struct {
	client *redis.Client
}

func NewHomeCache(client *redis.Client) *HomeCache {
	return &HomeCache{client: client}
}

// Get returns the cached summary, or (nil, nil) on a miss.
func (c *HomeCache) Get(ctx context.Context, userID string) (*ports.AccountsSummary, error) {
	payload, err := c.client.Get(ctx, c.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("home cache get: %w", err)
	}

	var summary ports.AccountsSummary
	if err := json.Unmarshal([]byte(payload), &summary); err != nil {
		return nil, fmt.Errorf("home cache decode: %w", err)
	}
	return &summary, nil
}

func (c *HomeCache) Set(ctx context.Context, userID string, summary *ports.AccountsSummary, ttl time.Duration) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("home cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(userID), payload, ttl).Err()
}

// Invalidate drops the cached entry so the next home load reflects newly
// linked accounts.
func (c *HomeCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}

func (c *HomeCache) key(userID string) string {
	return "home:" + userID
}
