package card_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haletran/cubewright/internal/card"
	"github.com/haletran/cubewright/internal/platform/apperr"
)

// fakeSource is an in-memory card.Source with switchable failure mode and
// call counting.
type fakeSource struct {
	packs []card.Pack
	cards map[string][]card.Card

	failing   bool
	packCalls int
	cardCalls int
}

func (source *fakeSource) FetchPacks(_ context.Context) ([]card.Pack, error) {
	source.packCalls++
	if source.failing {
		return nil, errors.New("source down")
	}
	return source.packs, nil
}

func (source *fakeSource) FetchCards(_ context.Context, packCode string) ([]card.Card, error) {
	source.cardCalls++
	if source.failing {
		return nil, errors.New("source down")
	}
	return source.cards[packCode], nil
}

// failingPutStore delegates reads to a memory store but rejects every write.
type failingPutStore struct {
	*card.MemoryCacheStore
}

func (store *failingPutStore) Put(_ context.Context, _ string, _ *card.CacheEntry) error {
	return errors.New("disk full")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		packs: []card.Pack{
			{Code: "core", Name: "Core Set", CycleCode: "core", CyclePosition: 1, Position: 1},
			{Code: "dwl", Name: "The Dunwich Legacy", CycleCode: "dwl", CyclePosition: 2, Position: 1},
		},
		cards: map[string][]card.Card{
			"core": {
				{Code: "01001", Name: "Roland Banks", PackCode: "core", Category: card.CategoryInvestigator, Quantity: 1},
			},
			"dwl": {
				{Code: "02001", Name: "Zoey Samaras", PackCode: "dwl", Category: card.CategoryInvestigator, Quantity: 1},
			},
		},
	}
}

/*
TestRepository_CacheHit verifies that a fresh cache entry is served without
contacting the source a second time.
*/
func TestRepository_CacheHit(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource()
	repository := card.NewRepository(source, card.NewMemoryCacheStore(), time.Hour, time.Second, discardLogger())

	// 1. Cold cache: fetch + persist
	packs, err := repository.Packs(ctx)
	require.NoError(t, err)
	assert.Len(t, packs, 2)
	assert.Equal(t, 1, source.packCalls)

	// 2. Warm cache: no source contact
	packs, err = repository.Packs(ctx)
	require.NoError(t, err)
	assert.Len(t, packs, 2)
	assert.Equal(t, 1, source.packCalls)
}

/*
TestRepository_StaleRefresh verifies that an expired entry triggers a fresh
fetch when the source is healthy.
*/
func TestRepository_StaleRefresh(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource()

	// TTL 0 makes every cached entry immediately stale.
	repository := card.NewRepository(source, card.NewMemoryCacheStore(), 0, time.Second, discardLogger())

	_, err := repository.Packs(ctx)
	require.NoError(t, err)
	_, err = repository.Packs(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, source.packCalls)
}

/*
TestRepository_StaleFallback verifies that a failed refresh falls back to the
stale cached copy instead of failing the request.
*/
func TestRepository_StaleFallback(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource()
	repository := card.NewRepository(source, card.NewMemoryCacheStore(), 0, time.Second, discardLogger())

	// Seed the cache while the source is healthy.
	_, err := repository.Packs(ctx)
	require.NoError(t, err)

	// Kill the source: the stale copy must still be served.
	source.failing = true
	packs, err := repository.Packs(ctx)
	require.NoError(t, err)
	assert.Len(t, packs, 2)
}

/*
TestRepository_SourceUnavailable verifies the error path when the source is
down and nothing is cached.
*/
func TestRepository_SourceUnavailable(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource()
	source.failing = true
	repository := card.NewRepository(source, card.NewMemoryCacheStore(), time.Hour, time.Second, discardLogger())

	_, err := repository.Packs(ctx)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "SOURCE_UNAVAILABLE", ae.Code)
}

/*
TestRepository_CacheWriteFailure verifies that a rejected cache write does
not fail the request: the freshly fetched data is served, and the next
request retries the fetch (and the write).
*/
func TestRepository_CacheWriteFailure(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource()
	store := &failingPutStore{MemoryCacheStore: card.NewMemoryCacheStore()}
	repository := card.NewRepository(source, store, time.Hour, time.Second, discardLogger())

	packs, err := repository.Packs(ctx)
	require.NoError(t, err)
	assert.Len(t, packs, 2)

	// Nothing was persisted, so the next read hits the source again.
	_, err = repository.Packs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, source.packCalls)
}

/*
TestRepository_Invalidate verifies scope handling: one pack, the pack
listing, or everything.
*/
func TestRepository_Invalidate(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource()
	repository := card.NewRepository(source, card.NewMemoryCacheStore(), time.Hour, time.Second, discardLogger())

	// Warm both the listing and one pack's cards.
	_, err := repository.Packs(ctx)
	require.NoError(t, err)
	_, err = repository.Cards(ctx, "core")
	require.NoError(t, err)
	require.Equal(t, 1, source.packCalls)
	require.Equal(t, 1, source.cardCalls)

	// Invalidating one pack leaves the listing cached.
	require.NoError(t, repository.Invalidate(ctx, "core"))
	_, err = repository.Cards(ctx, "core")
	require.NoError(t, err)
	_, err = repository.Packs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, source.cardCalls)
	assert.Equal(t, 1, source.packCalls)

	// Invalidating everything forces both to refetch.
	require.NoError(t, repository.Invalidate(ctx, card.ScopeAll))
	_, err = repository.Packs(ctx)
	require.NoError(t, err)
	_, err = repository.Cards(ctx, "core")
	require.NoError(t, err)
	assert.Equal(t, 2, source.packCalls)
	assert.Equal(t, 3, source.cardCalls)
}

/*
TestRepository_Snapshot verifies that a snapshot indexes every pack's cards
by code and resolves release ordering.
*/
func TestRepository_Snapshot(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource()
	repository := card.NewRepository(source, card.NewMemoryCacheStore(), time.Hour, time.Second, discardLogger())

	snapshot, err := repository.Snapshot(ctx)
	require.NoError(t, err)

	assert.Len(t, snapshot.Packs, 2)
	assert.Equal(t, 2, snapshot.CardCount())

	roland, ok := snapshot.CardByCode("01001")
	require.True(t, ok)
	assert.Equal(t, "core", roland.PackCode)

	zoey, ok := snapshot.CardByCode("02001")
	require.True(t, ok)
	assert.Less(t, snapshot.ReleaseKey(roland), snapshot.ReleaseKey(zoey))

	_, ok = snapshot.CardByCode("99999")
	assert.False(t, ok)
}
