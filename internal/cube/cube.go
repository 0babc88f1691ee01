// Package cube implements the cube assembly engine, the session capacity
// planner, and the Draftmancer output formatter.
package cube

import (
	"github.com/haletran/cubewright/internal/card"
)

// PackPick is one selected pack with its requested quantity. Order inside
// [Selection.Packs] matters: when two investigator printings collide on the
// same dedup key, the printing from the most recently listed pack wins.
type PackPick struct {
	Code     string `json:"code"`
	Quantity int    `json:"quantity"`
}

// Layout holds the per-participant consumption rates used by the capacity
// planner. A zero rate leaves that category unconstrained.
type Layout struct {
	InvestigatorsPerPlayer int `json:"investigators_per_player"`
	WeaknessesPerPlayer    int `json:"weaknesses_per_player"`
	PlayerCardsPerPack     int `json:"player_cards_per_pack"`
	PacksPerPlayer         int `json:"packs_per_player"`
}

// Selection is the user's input to cube assembly.
//
// The exclude list always wins over the include list and over pack-derived
// inclusion for the same card code.
type Selection struct {
	Packs   []PackPick `json:"packs"`
	Include []string   `json:"include,omitempty"`
	Exclude []string   `json:"exclude,omitempty"`

	// FullCube ignores pack quantities and includes every card of the
	// selected packs once per its intrinsic quantity.
	FullCube bool `json:"full_cube"`

	Layout Layout `json:"layout"`
}

// Entry is one card of the assembled cube with its final quantity.
type Entry struct {
	Code     string        `json:"code"`
	Name     string        `json:"name"`
	PackCode string        `json:"pack_code"`
	Category card.Category `json:"category"`
	Quantity int           `json:"quantity"`
	ImageURL string        `json:"image_url,omitempty"`
}

// Counts aggregates per-category card totals (summed quantities).
type Counts struct {
	Investigators int `json:"investigators"`
	Weaknesses    int `json:"weaknesses"`
	PlayerCards   int `json:"player_cards"`
}

// Cube is the engine's output: three category sequences ordered by pack
// release then card code, plus aggregate counts. A cube is recomputed fully
// on every assembly request and never mutated afterwards.
type Cube struct {
	Investigators []Entry `json:"investigators"`
	Weaknesses    []Entry `json:"weaknesses"`
	PlayerCards   []Entry `json:"player_cards"`
	Counts        Counts  `json:"counts"`
}
