package util

import (
	"strconv"
)

// ParseUint converts a path or form parameter to uint.
func ParseUint(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	return uint(id), err
}
