package card_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haletran/cubewright/internal/card"
)

/*
TestIndex_RequiredDirectional verifies that required relationships stay
one-way: a signature card does not require its investigator back.
*/
func TestIndex_RequiredDirectional(t *testing.T) {
	ctx := context.Background()
	source := &fakeSource{
		packs: []card.Pack{{Code: "core", CyclePosition: 1, Position: 1}},
		cards: map[string][]card.Card{
			"core": {
				{Code: "01001", Name: "Roland Banks", PackCode: "core", Category: card.CategoryInvestigator, RequiredCards: []string{"01006", "01007"}},
				{Code: "01006", Name: "Roland's .38 Special", PackCode: "core", Category: card.CategoryPlayerCard},
				{Code: "01007", Name: "Cover Up", PackCode: "core", Category: card.CategoryPlayerCard},
			},
		},
	}
	repository := card.NewRepository(source, card.NewMemoryCacheStore(), time.Hour, time.Second, discardLogger())

	snapshot, err := repository.Snapshot(ctx)
	require.NoError(t, err)

	index := card.BuildIndex(snapshot)

	required := index.RequiredFor("01001")
	assert.Len(t, required, 2)
	assert.Contains(t, required, "01006")
	assert.Contains(t, required, "01007")

	// Directional: the signature card requires nothing.
	assert.Empty(t, index.RequiredFor("01006"))
}

/*
TestIndex_BondedSymmetric verifies that a one-sided bonded declaration is
indexed in both directions.
*/
func TestIndex_BondedSymmetric(t *testing.T) {
	ctx := context.Background()
	source := &fakeSource{
		packs: []card.Pack{{Code: "tde", CyclePosition: 5, Position: 1}},
		cards: map[string][]card.Card{
			"tde": {
				{Code: "06015", Name: "Dream Diary", PackCode: "tde", Category: card.CategoryPlayerCard, BondedCards: []string{"06016"}},
				{Code: "06016", Name: "Essence of the Dream", PackCode: "tde", Category: card.CategoryPlayerCard},
			},
		},
	}
	repository := card.NewRepository(source, card.NewMemoryCacheStore(), time.Hour, time.Second, discardLogger())

	snapshot, err := repository.Snapshot(ctx)
	require.NoError(t, err)

	index := card.BuildIndex(snapshot)

	assert.Contains(t, index.BondedWith("06015"), "06016")
	assert.Contains(t, index.BondedWith("06016"), "06015")
}
