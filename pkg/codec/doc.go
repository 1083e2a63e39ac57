// Package codec implements the on-disk record format for kvdb's
// append-only log: the Entry type and the EntryCodec that frames,
// checksums, and bounds-checks it.
//
// # Record format
//
// Entries are serialized in a binary format with the checksum first:
//
//	[CRC32(4)][KLen(4)][VLen(4)][Flag(1)][Key][Value]
//
// Fields:
//   - CRC32: CRC-32/IEEE over every byte of the record except this field,
//     i.e. KLen..end of payload (little-endian)
//   - KLen: key length in bytes, bounded by MaxKeySize (little-endian)
//   - VLen: value length in bytes, bounded by MaxValSize; always zero for
//     a tombstone (little-endian)
//   - Flag: 0 for a live entry, 1 for a tombstone
//   - Key: KLen bytes
//   - Value: VLen bytes, omitted entirely when Flag is 1
//
// Putting the checksum first lets a writer finish the header once the
// payload length is known and lets a reader validate framing — after a
// bounded sanity check on the declared lengths — before trusting them
// enough to allocate a payload buffer.
//
// # Error handling
//
// Decode distinguishes a clean end of stream (zero bytes read at a
// record boundary) from a torn trailing write (a short read of 1 to
// HeaderSize-1 header bytes, a short payload, an out-of-bounds length
// field, or a checksum mismatch). The store package uses this
// distinction to implement its crash-tolerant replay policy.
package codec
