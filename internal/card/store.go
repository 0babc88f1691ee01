package card

import (
	"context"
	"encoding/json"
	"time"
)

// Source fetches pack and card records from the external card database.
//
// Implementations may be slow or temporarily unavailable; callers bound
// every fetch with a context deadline.
type Source interface {
	FetchPacks(context context.Context) ([]Pack, error)
	FetchCards(context context.Context, packCode string) ([]Card, error)
}

// CacheEntry is one persisted cache value together with the time it was
// fetched from the source. Freshness is decided by the repository, not the
// store, so stale entries survive their freshness window and remain
// available for fallback.
type CacheEntry struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Payload   json.RawMessage `json:"payload"`
}

// CacheStore is key-value persistence for fetched pack/card data.
//
// Put must replace atomically: a failed write never corrupts a previously
// valid entry for that key. Concurrent reads must not block; concurrent
// writes to the same key may race with last-writer-wins semantics.
type CacheStore interface {
	// Get returns the entry stored under key, or apperr.NotFound on a miss.
	Get(context context.Context, key string) (*CacheEntry, error)

	// Put atomically replaces the entry stored under key.
	Put(context context.Context, key string, entry *CacheEntry) error

	// Invalidate removes one key. Removing an absent key is not an error.
	Invalidate(context context.Context, key string) error

	// InvalidateAll removes every key owned by this service.
	InvalidateAll(context context.Context) error
}
