// Package crc provides the checksum algorithms layer.ChecksumLayer plugs
// in, built on hash/crc32 (no checksum/CRC library appears in any example
// repo's go.mod, so the CRCs come from the standard library).
package crc

import "hash/crc32"

// Algo computes a checksum over data and returns its wire bytes.
type Algo func(data []byte) []byte

// CRC32IEEE is the standard CRC-32 polynomial, big-endian on the wire.
func CRC32IEEE(data []byte) []byte {
	sum := crc32.ChecksumIEEE(data)
	return []byte{byte(sum >> 24), byte(sum >> 16), byte(sum >> 8), byte(sum)}
}

// CRC32Castagnoli uses the Castagnoli polynomial (crc32c), common on
// storage/network protocols that want better error-detection at the same
// width as CRC32IEEE.
func CRC32Castagnoli(data []byte) []byte {
	table := crc32.MakeTable(crc32.Castagnoli)
	sum := crc32.Checksum(data, table)
	return []byte{byte(sum >> 24), byte(sum >> 16), byte(sum >> 8), byte(sum)}
}

// SumBytes is the trivial one-byte additive checksum, useful for small or
// latency-sensitive links where a full CRC is overkill.
func SumBytes(data []byte) []byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return []byte{sum}
}
