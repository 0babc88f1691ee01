package cube

import (
	"strconv"
	"strings"

	"github.com/haletran/cubewright/internal/card"
)

// Draftmancer section markers, in the fixed order the consuming live-draft
// service expects. The document layout is parsed byte-for-byte downstream;
// do not reformat.
const (
	sectionInvestigators   = "[Investigators]"
	sectionBasicWeaknesses = "[BasicWeaknesses]"
	sectionPlayerCards     = "[PlayerCards]"
)

// FormatDraftmancer serializes an assembled cube into the Draftmancer
// plain-text cube list: three labeled sections in fixed order, one card per
// line as "<quantity> <code>", with the quantity omitted when it is 1.
func FormatDraftmancer(assembled *Cube) string {
	var builder strings.Builder

	writeSection(&builder, sectionInvestigators, assembled.Investigators)
	writeSection(&builder, sectionBasicWeaknesses, assembled.Weaknesses)
	writeSection(&builder, sectionPlayerCards, assembled.PlayerCards)

	return builder.String()
}

func writeSection(builder *strings.Builder, marker string, entries []Entry) {
	builder.WriteString(marker)
	builder.WriteByte('\n')

	for _, entry := range entries {
		if entry.Quantity != 1 {
			builder.WriteString(strconv.Itoa(entry.Quantity))
			builder.WriteByte(' ')
		}
		builder.WriteString(entry.Code)
		builder.WriteByte('\n')
	}
}

// parallelImageCanon maps the parallel investigators whose scan is shared or
// rotated across printings to the printing whose image must be emitted.
// This substitution affects only the visual reference, never inclusion or
// quantity.
var parallelImageCanon = map[string]string{
	"90001": "01002", // Daisy Walker (parallel) → Core printing
	"90008": "01003", // "Skids" O'Toole (parallel) → Core printing
	"90017": "01004", // Agnes Baker (parallel) → Core printing
	"90024": "01001", // Roland Banks (parallel) → Core printing
	"90037": "01005", // Wendy Adams (parallel) → Core printing
}

// visualReference returns the image URL to emit for a card, substituting
// the canonical scan for the fixed set of parallel-investigator exceptions.
func visualReference(c card.Card) string {
	canonical, ok := parallelImageCanon[c.Code]
	if !ok {
		return c.ImageURL
	}
	return cardImageURL(canonical)
}

// cardImageURL builds the standard scan location for a card code.
func cardImageURL(code string) string {
	return "https://arkhamdb.com/bundles/cards/" + code + ".png"
}
