package card

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/haletran/cubewright/internal/platform/apperr"
	"github.com/haletran/cubewright/internal/platform/constants"
)

// Invalidation scopes accepted by [Repository.Invalidate]. Any other value
// is treated as a single pack code.
const (
	ScopePacks = "packs"
	ScopeAll   = "all"
)

// Repository is the cached, typed view of the external card source.
//
// Read policy per key:
//
//   - fresh cache hit  → return cached data, no source contact
//   - miss or stale    → fetch, persist, return fresh data
//   - fetch fails, stale copy exists → log, return stale data
//   - fetch fails, nothing cached    → apperr.SourceUnavailable
//
// A failed cache write is logged and swallowed; the request is served from
// the freshly fetched in-memory data and the next request retries the write.
type Repository struct {
	source Source
	cache  CacheStore
	logger *slog.Logger

	// ttl is the freshness window for cached entries.
	ttl time.Duration

	// sourceTimeout bounds each upstream fetch so a hung source degrades
	// into the stale-fallback path instead of stalling the request.
	sourceTimeout time.Duration

	// now is replaceable in tests to control freshness decisions.
	now func() time.Time
}

// NewRepository creates a Repository over the given source and cache store.
func NewRepository(source Source, cache CacheStore, ttl, sourceTimeout time.Duration, logger *slog.Logger) *Repository {
	return &Repository{
		source:        source,
		cache:         cache,
		logger:        logger,
		ttl:           ttl,
		sourceTimeout: sourceTimeout,
		now:           time.Now,
	}
}

// Packs returns the pack listing, from cache when fresh.
func (repository *Repository) Packs(ctx context.Context) ([]Pack, error) {
	var packs []Pack
	err := repository.load(ctx, constants.CacheKeyPacks, &packs, func(fetchCtx context.Context) (any, error) {
		return repository.source.FetchPacks(fetchCtx)
	})
	if err != nil {
		return nil, err
	}
	return packs, nil
}

// Cards returns one pack's cards, from cache when fresh.
func (repository *Repository) Cards(ctx context.Context, packCode string) ([]Card, error) {
	var cards []Card
	key := constants.CacheKeyPackCardsPrefix + packCode
	err := repository.load(ctx, key, &cards, func(fetchCtx context.Context) (any, error) {
		return repository.source.FetchCards(fetchCtx, packCode)
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// Invalidate clears cached data for the given scope: ScopePacks, ScopeAll,
// or a single pack code.
func (repository *Repository) Invalidate(ctx context.Context, scope string) error {
	switch scope {
	case ScopeAll:
		return repository.cache.InvalidateAll(ctx)
	case ScopePacks:
		return repository.cache.Invalidate(ctx, constants.CacheKeyPacks)
	default:
		return repository.cache.Invalidate(ctx, constants.CacheKeyPackCardsPrefix+scope)
	}
}

// load implements the shared cache policy for one key.
//
// fetch returns the typed slice to persist; target receives the decoded
// payload (fresh, refetched, or stale).
func (repository *Repository) load(ctx context.Context, key string, target any, fetch func(context.Context) (any, error)) error {

	// 1. Fresh cache hit: serve without contacting the source.
	entry, getErr := repository.cache.Get(ctx, key)
	if getErr == nil && repository.fresh(entry) {
		if err := json.Unmarshal(entry.Payload, target); err == nil {
			return nil
		}
		// Undecodable entry: treat as a miss and refetch.
		repository.logger.Warn("cache_entry_corrupt", slog.String("key", key))
	}

	// 2. Miss or stale: fetch fresh data, bounded by the source timeout.
	fetchCtx, cancel := repository.fetchContext(ctx)
	fresh, fetchErr := fetch(fetchCtx)
	cancel()

	if fetchErr == nil {
		payload, err := json.Marshal(fresh)
		if err != nil {
			return apperr.Internal(err)
		}

		// Persist before returning. A write failure is logged, not fatal:
		// this request is served from memory and the next request retries
		// the write.
		putErr := repository.cache.Put(ctx, key, &CacheEntry{
			FetchedAt: repository.now(),
			Payload:   payload,
		})
		if putErr != nil {
			repository.logger.Warn("cache_write_failed",
				slog.String("key", key),
				slog.Any("error", putErr),
			)
		}

		return json.Unmarshal(payload, target)
	}

	// 3. Fetch failed: fall back to the stale copy when one exists.
	// This is a recoverable degradation, logged distinctly from the fresh
	// path so telemetry can tell the two apart.
	if getErr == nil {
		if err := json.Unmarshal(entry.Payload, target); err == nil {
			repository.logger.Warn("card_source_stale_fallback",
				slog.String("key", key),
				slog.Time("fetched_at", entry.FetchedAt),
				slog.Any("error", fetchErr),
			)
			return nil
		}
	}

	// 4. Nothing to serve.
	return apperr.SourceUnavailable(fetchErr)
}

// fresh reports whether the entry is inside the freshness window.
func (repository *Repository) fresh(entry *CacheEntry) bool {
	return repository.now().Before(entry.FetchedAt.Add(repository.ttl))
}

// fetchContext applies the repository's fetch deadline unless the parent
// context already expires sooner.
func (repository *Repository) fetchContext(parent context.Context) (context.Context, context.CancelFunc) {
	if repository.sourceTimeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, repository.sourceTimeout)
}
