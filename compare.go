package syrup

import "github.com/cespare/xxhash/v2"

// Equal reports whether a and b encode to byte-identical canonical
// representations (spec invariant: equality is defined solely by the
// canonical encoding).
func Equal(a, b Value) bool {
	return Compare(a, b) == 0
}

// Compare returns -1, 0, or +1 according to unsigned lexicographic
// ordering of a's and b's canonical encodings.
func Compare(a, b Value) int {
	return compareBytes(Encode(a), Encode(b))
}

// Hash returns a fast, non-cryptographic hash of v's canonical
// encoding. Two Values that are Equal always have the same Hash; the
// converse is not guaranteed.
func Hash(v Value) uint64 {
	return xxhash.Sum64(Encode(v))
}
