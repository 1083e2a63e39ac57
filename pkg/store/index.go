package store

// index is the in-memory key→value map the KV engine replays the log
// into. It is exclusively owned by one Engine; there is no locking
// here because the engine itself is single-threaded and serializes
// every call through its own mutex.
type index struct {
	entries map[string][]byte
}

func newIndex() *index {
	return &index{entries: make(map[string][]byte)}
}

func (idx *index) get(key []byte) ([]byte, bool) {
	v, ok := idx.entries[string(key)]
	return v, ok
}

func (idx *index) put(key, value []byte) {
	idx.entries[string(key)] = append([]byte(nil), value...)
}

func (idx *index) delete(key []byte) {
	delete(idx.entries, string(key))
}

func (idx *index) clear() {
	idx.entries = make(map[string][]byte)
}

func (idx *index) len() int {
	return len(idx.entries)
}
