// Package hash provides the 64-bit hash functions used to digest cache keys.
package hash

import "strconv"

// HashFunc hashes a key into 64 bits.
type HashFunc interface {
	Hash(key []byte) uint64
}

// Hex returns h(key) as a fixed width, 16 character lowercase hex string.
func Hex(h HashFunc, key []byte) string {
	s := strconv.FormatUint(h.Hash(key), 16)
	if n := 16 - len(s); n > 0 {
		s = "0000000000000000"[:n] + s
	}

	return s
}
