package codec

import (
	"github.com/cortexkv/kvdb/pkg/bitutil"
	"github.com/cortexkv/kvdb/pkg/dberr"
)

// Header layout offsets, all little-endian.
const (
	cksumOffset = 0
	klenOffset  = cksumOffset + 4
	vlenOffset  = klenOffset + 4
	flagOffset  = vlenOffset + 4

	// HeaderSize is the number of header bytes preceding the key/value
	// payload of every entry.
	HeaderSize = flagOffset + 1

	// MaxKeySize is the largest key length a live or tombstone entry may
	// declare.
	MaxKeySize = 1024
	// MaxValSize is the largest value length a live entry may declare.
	MaxValSize = 1024 * 1024
)

// Reader is the narrow capability EntryCodec.Decode needs: read some
// bytes, report how many were read. A zero-length, nil-error result
// means clean EOF. It is satisfied by both a platform.File and an
// in-memory byte buffer, which keeps the codec testable without disk.
type Reader interface {
	Read(buf []byte) (n int, err error)
}

// readFull reads exactly len(buf) bytes from r, distinguishing a clean
// zero-byte EOF (when allowEOF is true and nothing has been read yet)
// from a short read.
func readFull(r Reader, buf []byte, allowEOF bool) (read int, eof bool, err error) {
	for read < len(buf) {
		n, err := r.Read(buf[read:])
		if err != nil {
			return read, false, err
		}
		if n == 0 {
			if read == 0 && allowEOF {
				return 0, true, nil
			}
			return read, false, nil
		}
		read += n
	}
	return read, false, nil
}

// Encode serializes ent into a freshly allocated buffer: header, key,
// then value (omitted for a tombstone). The checksum is computed over
// everything from KLen through the end of the payload and written into
// the first four bytes last.
func Encode(ent Entry) []byte {
	klen := uint32(len(ent.Key))
	vlen := uint32(0)
	if !ent.Deleted {
		vlen = uint32(len(ent.Value))
	}

	buf := make([]byte, HeaderSize+int(klen)+int(vlen))

	bitutil.PutUint32LE(buf[klenOffset:], klen)
	bitutil.PutUint32LE(buf[vlenOffset:], vlen)
	if ent.Deleted {
		buf[flagOffset] = 1
	} else {
		buf[flagOffset] = 0
	}

	copy(buf[HeaderSize:], ent.Key)
	if !ent.Deleted {
		copy(buf[HeaderSize+int(klen):], ent.Value)
	}

	cksum := bitutil.CRC32IEEE(buf[klenOffset:])
	bitutil.PutUint32LE(buf[cksumOffset:], cksum)

	return buf
}

// EOF is returned by Decode to signal a clean end of the record stream:
// a zero-byte read at a record boundary, before any header bytes were
// consumed.
var EOF = &eofSentinel{}

type eofSentinel struct{}

func (*eofSentinel) Error() string { return "kvdb: end of log" }

// Decode reads exactly one entry from r. It returns (Entry{}, EOF) on a
// clean end of stream, or (Entry{}, err) where err is one of
// dberr.ErrTruncatedHeader, dberr.ErrTruncatedPayload,
// dberr.ErrKeyTooLarge, dberr.ErrValueTooLarge, dberr.ErrBadChecksum, or
// an I/O error from r.
func Decode(r Reader) (Entry, error) {
	header := make([]byte, HeaderSize)
	n, eof, err := readFull(r, header, true)
	if err != nil {
		return Entry{}, err
	}
	if eof {
		return Entry{}, EOF
	}
	if n < HeaderSize {
		return Entry{}, dberr.ErrTruncatedHeader
	}

	storedCksum := bitutil.Uint32LE(header[cksumOffset:])
	klen := bitutil.Uint32LE(header[klenOffset:])
	vlen := bitutil.Uint32LE(header[vlenOffset:])
	deleted := header[flagOffset] != 0

	if klen > MaxKeySize {
		return Entry{}, dberr.ErrKeyTooLarge
	}
	if vlen > MaxValSize {
		return Entry{}, dberr.ErrValueTooLarge
	}

	payloadLen := int(klen)
	if !deleted {
		payloadLen += int(vlen)
	}

	payload := make([]byte, payloadLen)
	if payloadLen > 0 {
		n, _, err := readFull(r, payload, false)
		if err != nil {
			return Entry{}, err
		}
		if n < payloadLen {
			return Entry{}, dberr.ErrTruncatedPayload
		}
	}

	digest := bitutil.NewDigest().Update(header[klenOffset:]).Update(payload)
	if digest.Sum32() != storedCksum {
		return Entry{}, dberr.ErrBadChecksum
	}

	ent := Entry{Deleted: deleted}
	ent.Key = append([]byte(nil), payload[:klen]...)
	if !deleted {
		ent.Value = append([]byte(nil), payload[klen:]...)
	}
	return ent, nil
}
