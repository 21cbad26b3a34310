// Package cache holds the two caching layers the map generation service
// sits on: an in-process MapCache for the single most-recently generated
// Map, and a Redis-backed QueryCache for small serializable summaries
// (timings, job metadata) worth sharing across instances.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 60 * time.Second

// QueryCache is a thin JSON cache over Redis, keyed by caller-chosen string
// keys (the HTTP layer keys job records as "job:<id>").
type QueryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewQueryCache returns a QueryCache using ttl as the default expiration for
// Set and GetOrSet. A non-positive ttl falls back to 60 seconds.
func NewQueryCache(client *redis.Client, ttl time.Duration) *QueryCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &QueryCache{client: client, ttl: ttl}
}

// Get unmarshals the cached value at key into dest. Returns redis.Nil if the
// key is absent.
func (c *QueryCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// Set marshals value as JSON and stores it under key with the cache's
// default TTL.
func (c *QueryCache) Set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

// Delete removes the given keys from the cache. Deleting an absent key is not
// an error.
func (c *QueryCache) Delete(ctx context.Context, keys ...string) error {
	return c.client.Del(ctx, keys...).Err()
}

// GetOrSet reads key into dest; on a cache miss it calls loader, stores the
// result under key, and decodes it into dest via a JSON marshal/unmarshal
// round trip so dest ends up populated the same way a cache hit would.
func (c *QueryCache) GetOrSet(ctx context.Context, key string, dest interface{}, loader func() (interface{}, error)) error {
	err := c.Get(ctx, key, dest)
	if err == nil {
		return nil
	}
	if err != redis.Nil {
		return err
	}

	value, err := loader()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return err
	}

	go func() {
		setCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = c.client.Set(setCtx, key, raw, c.ttl).Err()
	}()

	return nil
}
