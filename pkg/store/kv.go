package store

import (
	"bytes"
	"errors"
	"sync"

	"github.com/cortexkv/kvdb/pkg/codec"
	"github.com/cortexkv/kvdb/pkg/dberr"
)

// ErrNotOpen is returned by Set and Del when called on an Engine that
// has not been successfully Open'd. Get on such an Engine reports the
// key as absent instead.
var ErrNotOpen = errors.New("kvdb: engine is not open")

// Engine is the key-value engine: the in-memory index together with
// the replay and mutation protocols that tie it to the log. Every
// method serializes on an internal mutex, so one Engine may be called
// from several goroutines of the same process (the HTTP server does
// this); it is still the only writer of its log file, and two Engines
// opened on the same path are not supported.
//
// An Engine must not be copied once opened.
type Engine struct {
	mu     sync.Mutex
	path   string
	log    *Log
	idx    *index
	isOpen bool
}

// New constructs an Engine bound to path. The log file is not touched
// until Open is called.
func New(path string) *Engine {
	return &Engine{path: path, idx: newIndex()}
}

// Open opens the log and replays it into the index. It is a no-op if
// the engine is already open. Replay stops cleanly on EOF or on a
// tail-corruption signal; a structural error at the file header is
// fatal and returned as-is.
func (e *Engine) Open() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.isOpen {
		return nil
	}

	l, err := Open(e.path)
	if err != nil {
		return err
	}

	e.idx.clear()
	if err := l.SeekToFirstEntry(); err != nil {
		_ = l.Close()
		return err
	}

	if err := replay(l, e.idx); err != nil {
		_ = l.Close()
		return err
	}

	e.log = l
	e.isOpen = true
	return nil
}

// replay reads entries sequentially from l, applying each to idx, until
// a clean EOF or a tail-corruption signal is reached.
func replay(l *Log, idx *index) error {
	for {
		ent, err := l.Read()
		if err == codec.EOF {
			return nil
		}
		if err != nil {
			if dberr.IsTailCorruption(err) {
				return nil
			}
			return err
		}

		if ent.Deleted {
			idx.delete(ent.Key)
		} else {
			idx.put(ent.Key, ent.Value)
		}
	}
}

// Close closes the underlying log. It is idempotent.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.isOpen {
		return nil
	}
	err := e.log.Close()
	e.log = nil
	e.isOpen = false
	return err
}

// Get returns the currently indexed value for key, or ok=false if the
// key is absent. The returned slice is a copy; callers may retain it.
func (e *Engine) Get(key []byte) (value []byte, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.isOpen {
		return nil, false
	}

	v, ok := e.idx.get(key)
	if !ok {
		return nil, false
	}
	return append([]byte(nil), v...), true
}

// Set writes key→value under mode's conflict semantics. If the
// write is not needed (Upsert with an identical current value, Insert
// with the key already present, Update with the key absent or
// identical), no log write occurs and Set returns false. Otherwise a
// live Entry is appended and fsynced first; only on success is the
// index updated. A key longer than codec.MaxKeySize or a value longer
// than codec.MaxValSize is rejected with dberr.ErrKeyTooLarge or
// dberr.ErrValueTooLarge before anything is written.
func (e *Engine) Set(key, value []byte, mode Mode) (changed bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.isOpen {
		return false, ErrNotOpen
	}
	if len(key) > codec.MaxKeySize {
		return false, dberr.ErrKeyTooLarge
	}
	if len(value) > codec.MaxValSize {
		return false, dberr.ErrValueTooLarge
	}

	current, exists := e.idx.get(key)

	switch mode {
	case Insert:
		if exists {
			return false, nil
		}
	case Update:
		if !exists {
			return false, nil
		}
		if bytes.Equal(current, value) {
			return false, nil
		}
	default: // Upsert
		if exists && bytes.Equal(current, value) {
			return false, nil
		}
	}

	if err := e.log.Write(codec.NewEntry(key, value)); err != nil {
		return false, err
	}
	e.idx.put(key, value)
	return true, nil
}

// Del removes key. If the key is absent, no log write occurs and Del
// returns false. Otherwise a tombstone Entry is appended and fsynced
// first; only on success is the key erased from the index.
func (e *Engine) Del(key []byte) (existed bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.isOpen {
		return false, ErrNotOpen
	}

	if _, exists := e.idx.get(key); !exists {
		return false, nil
	}

	if err := e.log.Write(codec.NewTombstone(key)); err != nil {
		return false, err
	}
	e.idx.delete(key)
	return true, nil
}

// Len returns the number of live keys currently indexed.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.idx.len()
}
