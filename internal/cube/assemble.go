package cube

import (
	"fmt"
	"sort"

	"github.com/haletran/cubewright/internal/card"
	"github.com/haletran/cubewright/internal/platform/apperr"
)

// Assemble turns a selection into a deduplicated, relationship-complete,
// three-category cube against one repository snapshot.
//
// The pipeline runs in a fixed order: base set from selected packs,
// explicit includes, required-card backfill to a fixed point, investigator
// uniqueness resolution, exclusion, then categorization and ordering.
// Exclusion is applied last so it wins over every other source, including
// backfill. Assembly never errors for well-formed input; only unknown pack
// or card codes raise apperr.InvalidSelection.
func Assemble(snapshot *card.Snapshot, index *card.Index, selection Selection) (*Cube, error) {
	if err := validateSelection(snapshot, selection); err != nil {
		return nil, err
	}

	// Working set: final quantity per card code.
	quantities := make(map[string]int)

	// 1. Base set construction. Selection order is recorded per pack for
	// the dedup tie-break below.
	packPriority := make(map[string]int, len(selection.Packs))
	for position, pick := range selection.Packs {
		packPriority[pick.Code] = position

		if pick.Quantity <= 0 && !selection.FullCube {
			// Quantity 0 disables the pack.
			continue
		}

		for _, c := range snapshot.CardsOf(pick.Code) {
			if selection.FullCube {
				quantities[c.Code] += c.Quantity
			} else {
				quantities[c.Code] += c.Quantity * pick.Quantity
			}
		}
	}

	// 2. Explicit includes, even from unselected packs.
	for _, code := range selection.Include {
		if selection.FullCube {
			c, _ := snapshot.CardByCode(code)
			quantities[code] += c.Quantity
		} else {
			quantities[code]++
		}
	}

	// 3. Required-card backfill to a fixed point. The worklist is bounded
	// by the snapshot's distinct card count so an unexpected cycle in the
	// relationship data cannot loop forever.
	backfillRequired(snapshot, index, quantities)

	// 4. Uniqueness resolution within the investigator category.
	resolveInvestigatorDuplicates(snapshot, quantities, packPriority)

	// 5. Exclusion wins over everything, orphaned requirements included.
	for _, code := range selection.Exclude {
		delete(quantities, code)
	}

	// 6. Categorize and order.
	return categorize(snapshot, quantities), nil
}

// validateSelection rejects unknown pack and card codes. Exclude/include
// conflicts are not errors — exclusion simply wins.
func validateSelection(snapshot *card.Snapshot, selection Selection) error {
	var details []apperr.FieldError

	for position, pick := range selection.Packs {
		if _, ok := snapshot.PackByCode(pick.Code); !ok {
			details = append(details, apperr.FieldError{
				Field:   fmt.Sprintf("packs[%d].code", position),
				Message: fmt.Sprintf("Unknown pack code %q", pick.Code),
			})
		}
	}
	for position, code := range selection.Include {
		if _, ok := snapshot.CardByCode(code); !ok {
			details = append(details, apperr.FieldError{
				Field:   fmt.Sprintf("include[%d]", position),
				Message: fmt.Sprintf("Unknown card code %q", code),
			})
		}
	}
	for position, code := range selection.Exclude {
		if _, ok := snapshot.CardByCode(code); !ok {
			details = append(details, apperr.FieldError{
				Field:   fmt.Sprintf("exclude[%d]", position),
				Message: fmt.Sprintf("Unknown card code %q", code),
			})
		}
	}

	if len(details) > 0 {
		return apperr.InvalidSelection("Selection references unknown codes", details...)
	}
	return nil
}

// backfillRequired adds every transitively required card at quantity 1.
func backfillRequired(snapshot *card.Snapshot, index *card.Index, quantities map[string]int) {
	worklist := make([]string, 0, len(quantities))
	for code := range quantities {
		worklist = append(worklist, code)
	}

	// Each distinct code enters the worklist at most once, so the loop is
	// bounded by the snapshot size even with cyclic requirement data.
	steps := 0
	limit := snapshot.CardCount() + len(worklist)

	for len(worklist) > 0 && steps <= limit {
		steps++
		code := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		for requiredCode := range index.RequiredFor(code) {
			if _, present := quantities[requiredCode]; present {
				continue
			}
			if _, known := snapshot.CardByCode(requiredCode); !known {
				// Requirement points outside the snapshot; upstream data
				// gap, nothing to add.
				continue
			}
			quantities[requiredCode] = 1
			worklist = append(worklist, requiredCode)
		}
	}
}

// resolveInvestigatorDuplicates keeps exactly one printing per dedup key
// within the investigator category: the printing from the most recently
// listed pack in the selection wins, with ascending card code as the
// tie-break. Losing printings are dropped entirely, backfill contributions
// included. Other categories are not name-deduplicated.
func resolveInvestigatorDuplicates(snapshot *card.Snapshot, quantities map[string]int, packPriority map[string]int) {
	groups := make(map[card.DedupKey][]card.Card)

	for code := range quantities {
		c, ok := snapshot.CardByCode(code)
		if !ok || c.Category != card.CategoryInvestigator {
			continue
		}
		key := c.DedupKey()
		groups[key] = append(groups[key], c)
	}

	for _, group := range groups {
		if len(group) < 2 {
			continue
		}

		winner := pickWinner(group, packPriority)
		for _, c := range group {
			if c.Code != winner.Code {
				delete(quantities, c.Code)
			}
		}
	}
}

// pickWinner selects the surviving printing of a duplicated investigator.
func pickWinner(group []card.Card, packPriority map[string]int) card.Card {
	winner := group[0]
	winnerPriority := priorityOf(winner, packPriority)

	for _, candidate := range group[1:] {
		candidatePriority := priorityOf(candidate, packPriority)
		switch {
		case candidatePriority > winnerPriority:
			winner, winnerPriority = candidate, candidatePriority
		case candidatePriority == winnerPriority && candidate.Code < winner.Code:
			winner = candidate
		}
	}
	return winner
}

// priorityOf returns the card's pack position inside the selection, or -1
// for cards whose pack was not selected (include/backfill entrants).
func priorityOf(c card.Card, packPriority map[string]int) int {
	if priority, ok := packPriority[c.PackCode]; ok {
		return priority
	}
	return -1
}

// categorize partitions the working set into the three category sequences,
// ordered by pack release then card code.
func categorize(snapshot *card.Snapshot, quantities map[string]int) *Cube {
	assembled := &Cube{
		Investigators: []Entry{},
		Weaknesses:    []Entry{},
		PlayerCards:   []Entry{},
	}

	for code, quantity := range quantities {
		if quantity <= 0 {
			continue
		}

		c, ok := snapshot.CardByCode(code)
		if !ok {
			continue
		}

		entry := Entry{
			Code:     c.Code,
			Name:     c.Name,
			PackCode: c.PackCode,
			Category: c.Category,
			Quantity: quantity,
			ImageURL: visualReference(c),
		}

		switch c.Category {
		case card.CategoryInvestigator:
			assembled.Investigators = append(assembled.Investigators, entry)
			assembled.Counts.Investigators += quantity
		case card.CategoryBasicWeakness:
			assembled.Weaknesses = append(assembled.Weaknesses, entry)
			assembled.Counts.Weaknesses += quantity
		default:
			assembled.PlayerCards = append(assembled.PlayerCards, entry)
			assembled.Counts.PlayerCards += quantity
		}
	}

	orderEntries(snapshot, assembled.Investigators)
	orderEntries(snapshot, assembled.Weaknesses)
	orderEntries(snapshot, assembled.PlayerCards)

	return assembled
}

// orderEntries sorts one category sequence by pack release order, then code.
func orderEntries(snapshot *card.Snapshot, entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		left, _ := snapshot.CardByCode(entries[i].Code)
		right, _ := snapshot.CardByCode(entries[j].Code)

		leftKey := snapshot.ReleaseKey(left)
		rightKey := snapshot.ReleaseKey(right)
		if leftKey != rightKey {
			return leftKey < rightKey
		}
		return entries[i].Code < entries[j].Code
	})
}
