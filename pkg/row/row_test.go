package row

import (
	"bytes"
	"testing"

	"github.com/cortexkv/kvdb/pkg/cell"
	"github.com/cortexkv/kvdb/pkg/dberr"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	schema := Schema{cell.TypeI64, cell.TypeStr, cell.TypeNull}
	r := Row{cell.I64(7), cell.Str([]byte("hi")), cell.Null()}

	buf, err := Encode(r, schema)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoded, err := Decode(buf, schema)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(decoded) != len(r) {
		t.Fatalf("row length mismatch: got %d, want %d", len(decoded), len(r))
	}
	for i := range r {
		if !decoded[i].Equal(r[i]) {
			t.Errorf("column %d mismatch: got %+v, want %+v", i, decoded[i], r[i])
		}
	}
}

func TestEncode_SchemaLengthMismatch(t *testing.T) {
	schema := Schema{cell.TypeI64, cell.TypeI64}
	r := Row{cell.I64(1)}

	_, err := Encode(r, schema)
	if !dberr.Is(err, dberr.TypeMismatch) {
		t.Fatalf("expected type_mismatch, got %v", err)
	}
}

func TestDecode_TrailingGarbage(t *testing.T) {
	schema := Schema{cell.TypeI64}
	r := Row{cell.I64(1)}
	buf, err := Encode(r, schema)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	buf = append(buf, 0xFF)

	_, err = Decode(buf, schema)
	if !dberr.Is(err, dberr.TrailingGarbage) {
		t.Fatalf("expected trailing_garbage, got %v", err)
	}
}

func TestEncodeDecodeKey_RoundTrip(t *testing.T) {
	key := EncodeKey(42, []byte("user:1"))

	rowKey, err := DecodeKey(key, 42)
	if err != nil {
		t.Fatalf("DecodeKey failed: %v", err)
	}
	if !bytes.Equal(rowKey, []byte("user:1")) {
		t.Errorf("row key mismatch: got %q", rowKey)
	}
}

func TestDecodeKey_WrongTable(t *testing.T) {
	key := EncodeKey(42, []byte("user:1"))

	_, err := DecodeKey(key, 43)
	if !dberr.Is(err, dberr.BadKey) {
		t.Fatalf("expected bad_key, got %v", err)
	}
}

func TestDecodeKey_TooShort(t *testing.T) {
	_, err := DecodeKey([]byte{1, 2}, 42)
	if !dberr.Is(err, dberr.BadKey) {
		t.Fatalf("expected bad_key, got %v", err)
	}
}
