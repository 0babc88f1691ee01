package arkhamdb_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haletran/cubewright/internal/arkhamdb"
	"github.com/haletran/cubewright/internal/card"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_FetchPacks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/packs/", request.URL.Path)
		assert.Equal(t, "application/json", request.Header.Get("Accept"))

		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`[
			{"code": "core", "name": "Core Set", "cycle_code": "core", "cycle_position": 1, "position": 1},
			{"code": "dwl", "name": "The Dunwich Legacy", "cycle_code": "dwl", "cycle_position": 2, "position": 1}
		]`))
	}))
	defer server.Close()

	client := arkhamdb.NewClient(server.URL, discardLogger())

	packs, err := client.FetchPacks(context.Background())
	require.NoError(t, err)
	require.Len(t, packs, 2)

	assert.Equal(t, card.Pack{
		Code:          "core",
		Name:          "Core Set",
		CycleCode:     "core",
		CyclePosition: 1,
		Position:      1,
	}, packs[0])
}

/*
TestClient_FetchCards covers the upstream-to-domain mapping: type and
subtype codes to categories, deck_requirements parsing, bonded cards,
alternate_of to the parallel flag, and imagesrc to an absolute URL.
*/
func TestClient_FetchCards(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/cards/core", request.URL.Path)

		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`[
			{
				"code": "01001", "name": "Roland Banks", "pack_code": "core",
				"type_code": "investigator", "faction_code": "guardian",
				"is_unique": true, "quantity": 1,
				"deck_requirements": "size:30, card:01006, card:01007, random:subtype:basicweakness",
				"imagesrc": "/bundles/cards/01001.png"
			},
			{
				"code": "01101", "name": "Amnesia", "pack_code": "core",
				"type_code": "treachery", "subtype_code": "basicweakness",
				"faction_code": "neutral", "quantity": 2
			},
			{
				"code": "06015", "name": "Dream Diary", "pack_code": "core",
				"type_code": "asset", "faction_code": "seeker", "quantity": 1,
				"bonded_cards": [{"code": "06016", "count": 1}]
			},
			{
				"code": "90024", "name": "Roland Banks", "pack_code": "core",
				"type_code": "investigator", "faction_code": "guardian",
				"is_unique": true, "quantity": 1, "alternate_of": "01001",
				"deck_requirements": "size:30, card:90025:90026"
			}
		]`))
	}))
	defer server.Close()

	client := arkhamdb.NewClient(server.URL, discardLogger())

	cards, err := client.FetchCards(context.Background(), "core")
	require.NoError(t, err)
	require.Len(t, cards, 4)

	roland := cards[0]
	assert.Equal(t, card.CategoryInvestigator, roland.Category)
	assert.Equal(t, "guardian", roland.Faction)
	assert.True(t, roland.IsUnique)
	assert.Equal(t, []string{"01006", "01007"}, roland.RequiredCards)
	assert.False(t, roland.IsParallel)
	assert.Equal(t, "https://arkhamdb.com/bundles/cards/01001.png", roland.ImageURL)

	amnesia := cards[1]
	assert.Equal(t, card.CategoryBasicWeakness, amnesia.Category)
	assert.Equal(t, 2, amnesia.Quantity)

	diary := cards[2]
	assert.Equal(t, card.CategoryPlayerCard, diary.Category)
	assert.Equal(t, []string{"06016"}, diary.BondedCards)

	parallel := cards[3]
	assert.True(t, parallel.IsParallel)

	// Colon-separated alternatives inside one card clause are all required.
	assert.Equal(t, []string{"90025", "90026"}, parallel.RequiredCards)
}

func TestClient_UpstreamErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := arkhamdb.NewClient(server.URL, discardLogger())

	_, err := client.FetchPacks(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = writer.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := arkhamdb.NewClient(server.URL, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchCards(ctx, "core")
	require.Error(t, err)
}
