// Copyright (c) 2026 Cubewright. All rights reserved.
// Author: hale.tran.dev@gmail.com

package namenorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/haletran/cubewright/pkg/namenorm"
)

/*
TestFold verifies accent stripping, case folding, and whitespace collapsing.
*/
func TestFold(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Roland Banks", "roland banks"},
		{"uppercase", "AKACHI ONYELE", "akachi onyele"},
		{"accented", "Sefina Rousseaú", "sefina rousseau"},
		{"precomposed_accent", "José", "jose"},
		{"extra_whitespace", "  Daisy   Walker ", "daisy walker"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, namenorm.Fold(tt.input))
		})
	}
}

/*
TestFold_ReprintsMatch verifies that differently-encoded printings of the
same name fold to an identical key.
*/
func TestFold_ReprintsMatch(t *testing.T) {
	// NFC vs NFD encodings of the same accented name.
	assert.Equal(t, namenorm.Fold("François"), namenorm.Fold("François"))
}
