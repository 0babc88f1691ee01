package card

import (
	"context"
)

// Snapshot is one immutable view of every pack and card the repository
// knows about. Each cube assembly runs against exactly one snapshot, so
// concurrent requests never observe a half-refreshed repository.
type Snapshot struct {
	Packs []Pack

	packsByCode map[string]Pack
	cardsByPack map[string][]Card
	cardsByCode map[string]Card
}

// Snapshot loads the pack listing plus every pack's cards and indexes them
// by code. The per-pack reads go through the normal cache policy, so a warm
// cache makes this cheap and a cold one performs the full fetch.
func (repository *Repository) Snapshot(ctx context.Context) (*Snapshot, error) {
	packs, err := repository.Packs(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		Packs:       packs,
		packsByCode: make(map[string]Pack, len(packs)),
		cardsByPack: make(map[string][]Card, len(packs)),
		cardsByCode: make(map[string]Card),
	}

	for _, pack := range packs {
		snapshot.packsByCode[pack.Code] = pack

		cards, err := repository.Cards(ctx, pack.Code)
		if err != nil {
			return nil, err
		}

		snapshot.cardsByPack[pack.Code] = cards
		for _, c := range cards {
			snapshot.cardsByCode[c.Code] = c
		}
	}

	return snapshot, nil
}

// PackByCode returns the pack with the given code.
func (s *Snapshot) PackByCode(code string) (Pack, bool) {
	pack, ok := s.packsByCode[code]
	return pack, ok
}

// CardByCode returns the card with the given code.
func (s *Snapshot) CardByCode(code string) (Card, bool) {
	c, ok := s.cardsByCode[code]
	return c, ok
}

// CardsOf returns every card belonging to the given pack.
func (s *Snapshot) CardsOf(packCode string) []Card {
	return s.cardsByPack[packCode]
}

// CardCount returns the number of distinct card codes in the snapshot.
func (s *Snapshot) CardCount() int {
	return len(s.cardsByCode)
}

// ReleaseKey returns the release ordering key of a card's owning pack.
// Cards whose pack is unknown sort last.
func (s *Snapshot) ReleaseKey(c Card) int {
	pack, ok := s.packsByCode[c.PackCode]
	if !ok {
		return int(^uint(0) >> 1)
	}
	return pack.ReleaseKey()
}
