// Package field owns the wire field catalogue: self-describing scalar,
// bitfield, bundle, sequence, optional, and variant types that know how to
// read, write, and validate themselves against a byte cursor.
//
// Ownership boundary:
// - scalar numeric/enum/float codecs and their wire options
// - bitfield packing
// - bundle, sequence, optional, and variant composition
//
// Field does not own message identity or framing; see package message and
// package layer for those.
package field
