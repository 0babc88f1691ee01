// Package card owns the pack/card data model, the cached repository over the
// external card source, and the relationship index between cards.
package card

import (
	"github.com/haletran/cubewright/pkg/namenorm"
)

// Category is the fixed output sheet a card belongs to.
type Category string

const (
	CategoryInvestigator  Category = "investigator"
	CategoryBasicWeakness Category = "basic_weakness"
	CategoryPlayerCard    Category = "player_card"
)

// Pack is a purchasable/releasable product unit.
//
// Code is globally unique and immutable once cached; a pack is refreshed
// wholesale on invalidation, never partially mutated.
type Pack struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	CycleCode     string `json:"cycle_code"`
	CyclePosition int    `json:"cycle_position"`
	Position      int    `json:"position"`
}

// ReleaseKey returns the ordering key for release order: cycles first,
// then position within the cycle.
func (p Pack) ReleaseKey() int {
	return p.CyclePosition*1000 + p.Position
}

// Card is a single draftable unit.
//
// Category is fixed at fetch time and decides which of the three output
// sheets the card is emitted on.
type Card struct {
	Code     string   `json:"code"`
	Name     string   `json:"name"`
	PackCode string   `json:"pack_code"`
	Category Category `json:"category"`
	Faction  string   `json:"faction"`
	IsUnique bool     `json:"is_unique"`

	// Quantity is how many copies one printing of the owning pack yields.
	Quantity int `json:"quantity"`

	// RequiredCards lists codes that must accompany this card for
	// deck-building legality (directional, may be one-way).
	RequiredCards []string `json:"required_cards,omitempty"`

	// BondedCards lists codes this card is bonded to (symmetric).
	BondedCards []string `json:"bonded_cards,omitempty"`

	// IsParallel marks parallel/alternate-art printings of another card.
	IsParallel bool `json:"is_parallel"`

	// ImageURL is the raw visual reference emitted with the card.
	ImageURL string `json:"image_url,omitempty"`
}

// revisedCoreCode is the Revised Core Set pack code. For uniqueness checks
// it collapses into the base Core Set: the two printings of an investigator
// across these packs are the same logical card.
const (
	coreSetCode     = "core"
	revisedCoreCode = "rcore"
)

// DedupSet returns the set identity used for uniqueness checks.
// Core Set and Revised Core Set collapse to one logical set; every other
// pack remains distinct.
func (c Card) DedupSet() string {
	if c.PackCode == revisedCoreCode {
		return coreSetCode
	}
	return c.PackCode
}

// DedupKey identifies a card for uniqueness purposes: same folded display
// name in the same logical set means the same card.
type DedupKey struct {
	Name string
	Set  string
}

// DedupKey returns the (display name, set) identity of the card.
func (c Card) DedupKey() DedupKey {
	return DedupKey{Name: namenorm.Fold(c.Name), Set: c.DedupSet()}
}
