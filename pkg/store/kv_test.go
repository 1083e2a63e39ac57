package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cortexkv/kvdb/pkg/codec"
	"github.com/stretchr/testify/assert"
)

func tempEnginePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "active.kvdb")
}

func TestEngine_OpenCloseIsIdempotent(t *testing.T) {
	e := New(tempEnginePath(t))
	assert.NoError(t, e.Open())
	assert.NoError(t, e.Open())
	assert.NoError(t, e.Close())
	assert.NoError(t, e.Close())
}

func TestEngine_SetGetDel(t *testing.T) {
	e := New(tempEnginePath(t))
	assert.NoError(t, e.Open())
	defer e.Close()

	changed, err := e.Set([]byte("k1"), []byte("v1"), Upsert)
	assert.NoError(t, err)
	assert.True(t, changed)

	v, ok := e.Get([]byte("k1"))
	assert.True(t, ok)
	assert.Equal(t, []byte("v1"), v)

	existed, err := e.Del([]byte("k1"))
	assert.NoError(t, err)
	assert.True(t, existed)

	_, ok = e.Get([]byte("k1"))
	assert.False(t, ok)
}

func TestEngine_UpsertIdempotence(t *testing.T) {
	e := New(tempEnginePath(t))
	assert.NoError(t, e.Open())
	defer e.Close()

	changed, err := e.Set([]byte("k"), []byte("v"), Upsert)
	assert.NoError(t, err)
	assert.True(t, changed)

	changed, err = e.Set([]byte("k"), []byte("v"), Upsert)
	assert.NoError(t, err)
	assert.False(t, changed)
}

func TestEngine_InsertMode(t *testing.T) {
	e := New(tempEnginePath(t))
	assert.NoError(t, e.Open())
	defer e.Close()

	changed, err := e.Set([]byte("k"), []byte("v1"), Insert)
	assert.NoError(t, err)
	assert.True(t, changed)

	changed, err = e.Set([]byte("k"), []byte("v2"), Insert)
	assert.NoError(t, err)
	assert.False(t, changed)

	v, ok := e.Get([]byte("k"))
	assert.True(t, ok)
	assert.Equal(t, []byte("v1"), v, "Insert must not overwrite an existing key")
}

func TestEngine_UpdateMode(t *testing.T) {
	e := New(tempEnginePath(t))
	assert.NoError(t, e.Open())
	defer e.Close()

	changed, err := e.Set([]byte("k"), []byte("v1"), Update)
	assert.NoError(t, err)
	assert.False(t, changed, "Update on an absent key must not write")

	_, err = e.Set([]byte("k"), []byte("v1"), Upsert)
	assert.NoError(t, err)

	changed, err = e.Set([]byte("k"), []byte("v1"), Update)
	assert.NoError(t, err)
	assert.False(t, changed, "Update with an identical value must not write")

	changed, err = e.Set([]byte("k"), []byte("v2"), Update)
	assert.NoError(t, err)
	assert.True(t, changed)
}

func TestEngine_DelAbsentKeyIsNoop(t *testing.T) {
	e := New(tempEnginePath(t))
	assert.NoError(t, e.Open())
	defer e.Close()

	existed, err := e.Del([]byte("missing"))
	assert.NoError(t, err)
	assert.False(t, existed)
}

func TestEngine_ReplayAcrossReopen(t *testing.T) {
	path := tempEnginePath(t)

	e1 := New(path)
	assert.NoError(t, e1.Open())
	_, err := e1.Set([]byte("k1"), []byte("v1"), Upsert)
	assert.NoError(t, err)
	_, err = e1.Set([]byte("k2"), []byte("v2"), Upsert)
	assert.NoError(t, err)
	_, err = e1.Del([]byte("k1"))
	assert.NoError(t, err)
	assert.NoError(t, e1.Close())

	e2 := New(path)
	assert.NoError(t, e2.Open())
	defer e2.Close()

	_, ok := e2.Get([]byte("k1"))
	assert.False(t, ok, "k1 was deleted before close and must not reappear")

	v, ok := e2.Get([]byte("k2"))
	assert.True(t, ok)
	assert.Equal(t, []byte("v2"), v)
}

func TestEngine_ReplayToleratesTornTail(t *testing.T) {
	path := tempEnginePath(t)

	e1 := New(path)
	assert.NoError(t, e1.Open())
	_, err := e1.Set([]byte("k1"), []byte("v1"), Upsert)
	assert.NoError(t, err)
	assert.NoError(t, e1.Close())

	// Append a torn trailing write: a plausible-looking but incomplete
	// entry header.
	f, err := os.OpenFile(path, os.O_RDWR|os.O_APPEND, 0o644)
	assert.NoError(t, err)
	_, err = f.Write(codec.Encode(codec.NewEntry([]byte("k2"), []byte("v2")))[:5])
	assert.NoError(t, err)
	assert.NoError(t, f.Close())

	e2 := New(path)
	assert.NoError(t, e2.Open(), "a torn trailing write must not fail open")
	defer e2.Close()

	v, ok := e2.Get([]byte("k1"))
	assert.True(t, ok)
	assert.Equal(t, []byte("v1"), v)

	_, ok = e2.Get([]byte("k2"))
	assert.False(t, ok, "the torn record must not become visible")
}

func TestEngine_SetFailsWithoutOpen(t *testing.T) {
	e := New(tempEnginePath(t))

	_, err := e.Set([]byte("k"), []byte("v"), Upsert)
	assert.ErrorIs(t, err, ErrNotOpen)

	_, err = e.Del([]byte("k"))
	assert.ErrorIs(t, err, ErrNotOpen)

	_, ok := e.Get([]byte("k"))
	assert.False(t, ok)
}
