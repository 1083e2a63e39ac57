// Package row implements a typed row encoder layered on pkg/cell: a
// fixed Schema of column types, rows of Cells matching that schema,
// and keys namespaced by a table ID so distinct tables can share one
// kvdb log without their keys colliding.
//
// This is a generic convenience layer on top of the opaque
// byte-string keys and values the core engine actually stores; the
// engine itself never interprets table IDs, schemas, or cells.
package row

import (
	"github.com/cortexkv/kvdb/pkg/bitutil"
	"github.com/cortexkv/kvdb/pkg/cell"
	"github.com/cortexkv/kvdb/pkg/dberr"
)

// Schema is the ordered list of column types a Row must match.
type Schema []cell.Type

// Row is a sequence of cells, one per column of a Schema.
type Row []cell.Cell

// Encode serializes row against schema by encoding each cell in
// column order. len(row) must equal len(schema); a mismatch or any
// per-cell type mismatch returns dberr.ErrTypeMismatch.
func Encode(row Row, schema Schema) ([]byte, error) {
	if len(row) != len(schema) {
		return nil, dberr.ErrTypeMismatch
	}
	var out []byte
	for i, c := range row {
		var err error
		out, err = cell.Encode(c, schema[i], out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Decode parses exactly one Row matching schema from buf. Any bytes
// left over once every column has been consumed is dberr.ErrTrailingGarbage:
// a row encoding is expected to be a whole value, not a prefix of one.
func Decode(buf []byte, schema Schema) (Row, error) {
	row := make(Row, len(schema))
	for i, t := range schema {
		c, rest, err := cell.Decode(buf, t)
		if err != nil {
			return nil, err
		}
		row[i] = c
		buf = rest
	}
	if len(buf) != 0 {
		return nil, dberr.ErrTrailingGarbage
	}
	return row, nil
}

// keyPrefixSize is the number of bytes a table ID occupies at the
// front of a namespaced key.
const keyPrefixSize = 4

// EncodeKey prepends tableID, little-endian, to rowKey to produce the
// opaque key the engine stores under.
func EncodeKey(tableID uint32, rowKey []byte) []byte {
	out := make([]byte, keyPrefixSize+len(rowKey))
	bitutil.PutUint32LE(out, tableID)
	copy(out[keyPrefixSize:], rowKey)
	return out
}

// DecodeKey strips and validates the table ID prefix of key, returning
// the row-local key that follows it. A key shorter than the prefix, or
// one prefixed with a different table ID, is dberr.ErrBadKey.
func DecodeKey(key []byte, tableID uint32) ([]byte, error) {
	if len(key) < keyPrefixSize {
		return nil, dberr.ErrBadKey
	}
	if bitutil.Uint32LE(key) != tableID {
		return nil, dberr.ErrBadKey
	}
	return key[keyPrefixSize:], nil
}
