// Package bitutil provides the little-endian integer packing and CRC-32
// routines shared by the entry and cell codecs. Every multi-byte integer
// in the on-disk format is little-endian regardless of host endianness.
package bitutil

import (
	"encoding/binary"
	"hash/crc32"
)

// PutUint32LE writes v into buf[0:4] in little-endian order.
func PutUint32LE(buf []byte, v uint32) {
	binary.LittleEndian.PutUint32(buf, v)
}

// Uint32LE reads a little-endian uint32 from buf[0:4].
func Uint32LE(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf)
}

// PutUint16LE writes v into buf[0:2] in little-endian order.
func PutUint16LE(buf []byte, v uint16) {
	binary.LittleEndian.PutUint16(buf, v)
}

// Uint16LE reads a little-endian uint16 from buf[0:2].
func Uint16LE(buf []byte) uint16 {
	return binary.LittleEndian.Uint16(buf)
}

// PutInt64LE writes v into buf[0:8] in little-endian two's-complement order.
func PutInt64LE(buf []byte, v int64) {
	binary.LittleEndian.PutUint64(buf, uint64(v))
}

// Int64LE reads a little-endian two's-complement int64 from buf[0:8].
func Int64LE(buf []byte) int64 {
	return int64(binary.LittleEndian.Uint64(buf))
}

// CRC32IEEE computes the CRC-32/IEEE checksum (reflected polynomial
// 0xEDB88320, init 0xFFFFFFFF, final XOR 0xFFFFFFFF) over buf, the same
// checksum used by PNG and zlib. hash/crc32's IEEE table is the table-driven
// implementation the rest of the corpus's record codecs reach for directly.
func CRC32IEEE(buf []byte) uint32 {
	return crc32.ChecksumIEEE(buf)
}

// Digest accumulates a CRC-32/IEEE checksum across multiple Update calls,
// used by the entry codec to checksum header and payload separately
// without concatenating them into one buffer first.
type Digest struct {
	table *crc32.Table
	crc   uint32
}

// NewDigest returns a Digest ready to accumulate CRC-32/IEEE input.
func NewDigest() *Digest {
	return &Digest{table: crc32.IEEETable, crc: 0}
}

// Update folds buf into the running checksum and returns the digest for
// chaining.
func (d *Digest) Update(buf []byte) *Digest {
	d.crc = crc32.Update(d.crc, d.table, buf)
	return d
}

// Sum32 returns the checksum accumulated so far.
func (d *Digest) Sum32() uint32 {
	return d.crc
}
