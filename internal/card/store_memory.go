package card

import (
	"context"
	"strings"
	"sync"

	"github.com/haletran/cubewright/internal/platform/apperr"
	"github.com/haletran/cubewright/internal/platform/constants"
)

// MemoryCacheStore is an in-memory CacheStore used by tests and local
// development. Reads take the read lock only, so concurrent reads never
// block each other; writes replace whole entries under the write lock.
type MemoryCacheStore struct {
	mu      sync.RWMutex
	entries map[string]*CacheEntry
}

// NewMemoryCacheStore creates an empty in-memory cache store.
func NewMemoryCacheStore() *MemoryCacheStore {
	return &MemoryCacheStore{entries: make(map[string]*CacheEntry)}
}

// Get returns the entry stored under key, or apperr.NotFound on a miss.
func (store *MemoryCacheStore) Get(_ context.Context, key string) (*CacheEntry, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	entry, ok := store.entries[key]
	if !ok {
		return nil, apperr.NotFound("Cache entry")
	}
	return entry, nil
}

// Put atomically replaces the entry stored under key.
func (store *MemoryCacheStore) Put(_ context.Context, key string, entry *CacheEntry) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.entries[key] = entry
	return nil
}

// Invalidate removes one key.
func (store *MemoryCacheStore) Invalidate(_ context.Context, key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.entries, key)
	return nil
}

// InvalidateAll removes every service-owned key.
func (store *MemoryCacheStore) InvalidateAll(_ context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for key := range store.entries {
		if strings.HasPrefix(key, constants.CacheKeyGlobPrefix) {
			delete(store.entries, key)
		}
	}
	return nil
}
