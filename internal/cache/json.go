package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-quizzer/internal/domain"
)

// GetJSON reads key and decodes it into dest. It returns domain.ErrCacheMiss
// when the key is absent.
func GetJSON(ctx context.Context, c domain.Cache, key string, dest interface{}) error {
	raw, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("decode cached %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, c domain.Cache, key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s for cache: %w", key, err)
	}
	return c.Set(ctx, key, string(data), ttl)
}
