// Copyright (c) 2026 Cubewright. All rights reserved.
// Author: hale.tran.dev@gmail.com

package card

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/haletran/cubewright/internal/platform/apperr"
	"github.com/haletran/cubewright/internal/platform/constants"
)

// RedisCacheStore implements CacheStore using Redis.
//
// Entries are stored as JSON without a Redis TTL: the freshness window is
// enforced by the repository so that stale values remain available for
// fallback when the external source is down.
type RedisCacheStore struct {
	client *redis.Client
}

// NewRedisCacheStore creates a new Redis-backed CacheStore.
func NewRedisCacheStore(client *redis.Client) *RedisCacheStore {
	return &RedisCacheStore{client: client}
}

/*
Get retrieves the cache entry stored under key.

Description: Returns apperr.NotFound if the key is absent.

Parameters:
  - context: context.Context
  - key: string (one of the cube:* cache keys)

Returns:
  - *CacheEntry: The stored entry with its fetch timestamp
  - error: apperr.NotFound or connectivity errors
*/
func (store *RedisCacheStore) Get(context context.Context, key string) (*CacheEntry, error) {

	// Fetch the serialized entry from Redis
	raw, err := store.client.Get(context, key).Bytes()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Cache entry")
		}
		return nil, fmt.Errorf("redis_cache_get_failed: %w", err)
	}

	// Decode the entry envelope
	entry := &CacheEntry{}
	if err := json.Unmarshal(raw, entry); err != nil {
		return nil, fmt.Errorf("redis_cache_decode_failed: %w", err)
	}

	// Return the entry
	return entry, nil
}

/*
Put atomically replaces the cache entry stored under key.

Description: Redis SET replaces the whole value in one command, so a failed
write leaves any previously stored entry untouched.

Parameters:
  - context: context.Context
  - key: string
  - entry: *CacheEntry

Returns:
  - error: Storage failures
*/
func (store *RedisCacheStore) Put(context context.Context, key string, entry *CacheEntry) error {

	// Encode the entry envelope
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("redis_cache_encode_failed: %w", err)
	}

	// Replace the value (no TTL — staleness is the repository's concern)
	if err := store.client.Set(context, key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis_cache_put_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
Invalidate removes one cache key.

Parameters:
  - context: context.Context
  - key: string

Returns:
  - error: Deletion failures
*/
func (store *RedisCacheStore) Invalidate(context context.Context, key string) error {

	// Delete the key from Redis
	if err := store.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_cache_invalidate_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
InvalidateAll removes every cache key owned by this service.

Description: Iterates the cube:* keyspace with SCAN to avoid blocking Redis
the way KEYS would on a large instance.

Parameters:
  - context: context.Context

Returns:
  - error: Scan or deletion failures
*/
func (store *RedisCacheStore) InvalidateAll(context context.Context) error {

	// Scan the service-owned keyspace
	iter := store.client.Scan(context, 0, constants.CacheKeyGlobPrefix+"*", 0).Iterator()

	for iter.Next(context) {
		if err := store.client.Del(context, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis_cache_invalidate_all_failed: %w", err)
		}
	}

	// Surface scan failures
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis_cache_scan_failed: %w", err)
	}

	// Return nil on success
	return nil
}
