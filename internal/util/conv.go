package util

import (
	"strconv"
)

// MustParseUint parses a path ID, returning 0 when s is not a positive integer.
func MustParseUint(s string) uint {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}
