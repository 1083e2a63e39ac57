package cell

import (
	"github.com/cortexkv/kvdb/pkg/bitutil"
	"github.com/cortexkv/kvdb/pkg/dberr"
)

// Tag bytes written ahead of a null cell. I64 and Str cells carry no tag
// of their own: the caller always supplies the expected Type, since the
// row layout (pkg/row) already knows each column's declared type.
const nullTag = 0x02

// Encode appends the wire form of c to out and returns the extended
// slice. If c.Type() does not equal want, it returns
// dberr.ErrTypeMismatch and the slice unchanged.
func Encode(c Cell, want Type, out []byte) ([]byte, error) {
	if c.Type() != want {
		return out, dberr.ErrTypeMismatch
	}
	switch want {
	case TypeNull:
		return append(out, nullTag), nil
	case TypeI64:
		var buf [8]byte
		bitutil.PutInt64LE(buf[:], c.AsI64())
		return append(out, buf[:]...), nil
	case TypeStr:
		s := c.AsStr()
		var lenBuf [4]byte
		bitutil.PutUint32LE(lenBuf[:], uint32(len(s)))
		out = append(out, lenBuf[:]...)
		return append(out, s...), nil
	default:
		return out, dberr.ErrTypeMismatch
	}
}

// Decode reads one cell of type want from the front of buf, returning
// the cell and the remaining, unconsumed bytes. It returns
// dberr.ErrExpectMoreData if buf is too short to hold the declared
// value.
func Decode(buf []byte, want Type) (Cell, []byte, error) {
	switch want {
	case TypeNull:
		if len(buf) < 1 {
			return Cell{}, nil, dberr.ErrExpectMoreData
		}
		if buf[0] != nullTag {
			return Cell{}, nil, dberr.ErrTypeMismatch
		}
		return Null(), buf[1:], nil
	case TypeI64:
		if len(buf) < 8 {
			return Cell{}, nil, dberr.ErrExpectMoreData
		}
		return I64(bitutil.Int64LE(buf[:8])), buf[8:], nil
	case TypeStr:
		if len(buf) < 4 {
			return Cell{}, nil, dberr.ErrExpectMoreData
		}
		n := bitutil.Uint32LE(buf[:4])
		buf = buf[4:]
		if uint64(len(buf)) < uint64(n) {
			return Cell{}, nil, dberr.ErrExpectMoreData
		}
		return Str(buf[:n]), buf[n:], nil
	default:
		return Cell{}, nil, dberr.ErrTypeMismatch
	}
}
