// Copyright (c) 2026 Cubewright. All rights reserved.
// Author: hale.tran.dev@gmail.com

// Package namenorm folds card display names into a canonical comparison form.
//
// # Why fold?
//
// Investigator uniqueness is decided by display name, but upstream card data
// is not consistent about diacritics or casing across reprints ("Akachi
// Onyele" vs "AKACHI ONYELE"). Folding strips combining marks, lowercases,
// and collapses interior whitespace so that two printings of the same
// investigator always produce the same dedup key.
package namenorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldChain decomposes (NFD), removes combining marks, and recomposes (NFC).
var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold returns the canonical comparison form of a card display name.
//
// The result is lowercase, accent-free, and single-spaced. Folding is
// lossy on purpose; never display the folded form to users.
func Fold(name string) string {
	folded, _, err := transform.String(foldChain, name)
	if err != nil {
		// Transform only fails on malformed UTF-8; fall back to the raw name.
		folded = name
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}
