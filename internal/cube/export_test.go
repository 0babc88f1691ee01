package cube_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/haletran/cubewright/internal/cube"
)

/*
TestFormatDraftmancer checks the exported document byte for byte: section
markers in fixed order, one "<quantity> <code>" line per entry with the
quantity omitted when it is 1, and a trailing newline on every line.
*/
func TestFormatDraftmancer(t *testing.T) {
	assembled := &cube.Cube{
		Investigators: []cube.Entry{
			{Code: "01001", Quantity: 1},
			{Code: "01002", Quantity: 2},
		},
		Weaknesses: []cube.Entry{
			{Code: "01101", Quantity: 2},
		},
		PlayerCards: []cube.Entry{
			{Code: "01020", Quantity: 2},
			{Code: "02040", Quantity: 1},
		},
	}

	want := "[Investigators]\n" +
		"01001\n" +
		"2 01002\n" +
		"[BasicWeaknesses]\n" +
		"2 01101\n" +
		"[PlayerCards]\n" +
		"2 01020\n" +
		"02040\n"

	assert.Equal(t, want, cube.FormatDraftmancer(assembled))
}

/*
TestFormatDraftmancer_EmptyCube verifies empty categories still print their
section markers, keeping the document parseable.
*/
func TestFormatDraftmancer_EmptyCube(t *testing.T) {
	got := cube.FormatDraftmancer(&cube.Cube{})
	assert.Equal(t, "[Investigators]\n[BasicWeaknesses]\n[PlayerCards]\n", got)
}
