package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/taskdeck/taskdeck/internal/model"
)

const (
	// authCachePrefix is the Redis key prefix for auth context cache.
	authCachePrefix = "auth:ctx:"
	// authCacheTTL is the time-to-live for cached auth contexts. Kept
	// well below the token lifetime so stale identities age out fast.
	authCacheTTL = 5 * time.Minute
)

// cachedAuthContext is the Redis representation of an auth context.
type cachedAuthContext struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// GetAuthContext retrieves a cached auth context by token hash.
// Returns nil on cache miss.
func (c *Cache) GetAuthContext(ctx context.Context, tokenHash string) (*model.AuthContext, error) {
	key := authCachePrefix + tokenHash

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// Cache miss is not an error
		return nil, nil //nolint:nilerr
	}

	var cached cachedAuthContext
	if err := json.Unmarshal(data, &cached); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, nil //nolint:nilerr
	}

	return &model.AuthContext{
		UserID:   cached.UserID,
		Username: cached.Username,
	}, nil
}

// SetAuthContext caches an auth context under a token hash. The entry
// expires with the token if that comes sooner than authCacheTTL, so a
// cached identity can never authenticate past the token's lifetime.
func (c *Cache) SetAuthContext(ctx context.Context, tokenHash string, auth *model.AuthContext, expiresAt time.Time) error {
	ttl := authContextTTL(time.Now(), expiresAt)
	if ttl <= 0 {
		return nil
	}

	key := authCachePrefix + tokenHash

	data, err := json.Marshal(cachedAuthContext{
		UserID:   auth.UserID,
		Username: auth.Username,
	})
	if err != nil {
		return fmt.Errorf("marshal auth context: %w", err)
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// authContextTTL returns the cache lifetime for an auth context: the
// lesser of authCacheTTL and the token's remaining validity.
func authContextTTL(now, expiresAt time.Time) time.Duration {
	remaining := expiresAt.Sub(now)
	if remaining < authCacheTTL {
		return remaining
	}
	return authCacheTTL
}

// DeleteAuthContext removes a cached auth context.
func (c *Cache) DeleteAuthContext(ctx context.Context, tokenHash string) error {
	key := authCachePrefix + tokenHash
	return c.client.Del(ctx, key).Err()
}
