/*
Package convert provides fault-tolerant string conversions for query
parameter parsing, wrapping [strconv] so handlers can treat a malformed
value the same as an absent one.

Do not use this package where malformed input must be distinguished from a
zero value; call [strconv] directly instead.
*/
package convert

import (
	"strconv"
)

// ToBool parses a boolean string ("true", "1", "false", "0").
// It returns false on empty string or parse error.
func ToBool(s string) bool {
	if s == "" {
		return false
	}

	v, _ := strconv.ParseBool(s)
	return v
}

// ToIntD converts a string to an int, returning the provided default if
// parsing fails or the string is empty.
func ToIntD(s string, def int) int {
	if s == "" {
		return def
	}

	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
