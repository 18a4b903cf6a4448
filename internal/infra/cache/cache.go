package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Cache is a byte cache with per-entry expiry. Get reports a miss with
// ok=false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

const CategoriesKey = "categories:all"

func MasterKey(masterID uint) string {
	return fmt.Sprintf("master:%d", masterID)
}

// GetJSON decodes a cached value into dst. A miss or an undecodable entry
// reports false.
func GetJSON(ctx context.Context, c Cache, key string, dst any) bool {
	raw, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, raw, ttl)
}

// Noop is used when no Redis address is configured.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error { return nil }
