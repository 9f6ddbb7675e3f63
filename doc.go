// Package syrup implements a codec for Syrup, a compact binary
// serialization format encoding booleans, 32/64-bit floats,
// arbitrary-precision integers, binary blobs, strings, symbols, ordered
// sequences, sets, dictionaries, and labeled records.
//
// Components:
//   - Value: a tagged union with a canonical on-the-wire byte encoding.
//     Equality, ordering, and hashing of Value are defined solely by
//     that encoding (see Equal, Compare, Hash).
//   - Parser: Parse/ParseAll consume a byte slice and produce a Value.
//   - binding (subpackage): a reflection-driven binding layer mapping Go
//     types onto Value and back via Marshal/Unmarshal.
//
// Wire grammar (first byte dispatch):
//
//	t, f            booleans
//	F + 4 bytes     float32, big-endian
//	D + 8 bytes     float64, big-endian
//	<digits>+ / -   integer (magnitude, then sign)
//	<digits>:       binary, length-prefixed
//	<digits>"       string, length-prefixed (UTF-8 bytes)
//	<digits>'       symbol, length-prefixed (UTF-8 bytes)
//	[ ... ]         sequence
//	{ ... }         dictionary (canonical key order)
//	< label ... >   record
//	# ... $         set (canonical order)
package syrup
