package card_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/haletran/cubewright/internal/card"
)

/*
TestCard_DedupSet verifies that the Revised Core Set collapses into the base
Core Set for uniqueness purposes while every other pack stays distinct.
*/
func TestCard_DedupSet(t *testing.T) {
	tests := []struct {
		name     string
		packCode string
		want     string
	}{
		{"core_set", "core", "core"},
		{"revised_core_collapses", "rcore", "core"},
		{"expansion_stays_distinct", "dwl", "dwl"},
		{"parallel_pack_stays_distinct", "books", "books"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := card.Card{Code: "01001", Name: "Roland Banks", PackCode: tt.packCode}
			assert.Equal(t, tt.want, c.DedupSet())
		})
	}
}

/*
TestCard_DedupKey verifies that two printings of the same investigator across
Core and Revised Core share one dedup key, regardless of name casing.
*/
func TestCard_DedupKey(t *testing.T) {
	core := card.Card{Code: "01001", Name: "Roland Banks", PackCode: "core"}
	revised := card.Card{Code: "rc01", Name: "ROLAND BANKS", PackCode: "rcore"}
	expansion := card.Card{Code: "02001", Name: "Roland Banks", PackCode: "dwl"}

	assert.Equal(t, core.DedupKey(), revised.DedupKey())
	assert.NotEqual(t, core.DedupKey(), expansion.DedupKey())
}

/*
TestPack_ReleaseKey verifies release ordering: cycle first, then position.
*/
func TestPack_ReleaseKey(t *testing.T) {
	core := card.Pack{Code: "core", CyclePosition: 1, Position: 1}
	dwl := card.Pack{Code: "dwl", CyclePosition: 2, Position: 1}
	tmm := card.Pack{Code: "tmm", CyclePosition: 2, Position: 2}

	assert.Less(t, core.ReleaseKey(), dwl.ReleaseKey())
	assert.Less(t, dwl.ReleaseKey(), tmm.ReleaseKey())
}
