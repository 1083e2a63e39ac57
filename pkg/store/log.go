// Package store implements the append-only log and the key-value
// engine that replays it into an in-memory index.
package store

import (
	"sync"

	"github.com/cortexkv/kvdb/pkg/bitutil"
	"github.com/cortexkv/kvdb/pkg/codec"
	"github.com/cortexkv/kvdb/pkg/dberr"
	"github.com/cortexkv/kvdb/pkg/platform"
)

// Magic is the 4-byte value identifying a kvdb log file.
const Magic uint32 = 0x4B564442

// FormatVersion is the file header version this build writes and the
// newest version it knows how to read.
const FormatVersion uint16 = 2

// FileHeaderSize is the size in bytes of the magic+version file header
// that precedes the first Entry.
const FileHeaderSize = 6

// Log is the append-only, file-header-versioned sequential store. It
// owns exactly one file handle; reads and writes share the same cursor,
// so callers only read during replay, before the first write.
type Log struct {
	mu   sync.Mutex
	file platform.File
}

// Open opens path for read+write, creating it if absent. A freshly
// created (empty) file gets the file header written immediately; an
// existing file has its header validated. The cursor is left at the
// first entry (offset FileHeaderSize) either way.
func Open(path string) (*Log, error) {
	res, err := platform.Open(path)
	if err != nil {
		return nil, err
	}
	l := &Log{file: res.File}

	if res.Empty {
		if err := l.writeFileHeader(); err != nil {
			_ = l.file.Close()
			return nil, err
		}
		return l, nil
	}

	if err := l.validateFileHeader(); err != nil {
		_ = l.file.Close()
		return nil, err
	}
	return l, nil
}

func (l *Log) writeFileHeader() error {
	var buf [FileHeaderSize]byte
	bitutil.PutUint32LE(buf[0:4], Magic)
	bitutil.PutUint16LE(buf[4:6], FormatVersion)
	return l.file.Write(buf[:])
}

func (l *Log) validateFileHeader() error {
	buf := make([]byte, FileHeaderSize)
	n, err := readFullFile(l.file, buf)
	if err != nil {
		return err
	}
	if n < FileHeaderSize {
		return dberr.ErrTruncatedHeader
	}

	magic := bitutil.Uint32LE(buf[0:4])
	version := bitutil.Uint16LE(buf[4:6])

	if magic != Magic {
		return dberr.ErrBadMagic
	}
	if version > FormatVersion {
		return dberr.ErrUnsupportedVersion
	}
	return nil
}

// readFullFile reads until buf is full or a clean EOF is hit, returning
// the short count with no error in the latter case so the caller can
// decide what a short file header means.
func readFullFile(f platform.File, buf []byte) (int, error) {
	read := 0
	for read < len(buf) {
		n, err := f.Read(buf[read:])
		if err != nil {
			return read, err
		}
		if n == 0 {
			return read, nil
		}
		read += n
	}
	return read, nil
}

// Write appends ent to the log: seek to end, encode, write, fsync. On
// success the record is durable; a subsequent crash must still observe
// it after replay.
func (l *Log) Write(ent codec.Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.file.Seek(0, platform.SeekEnd); err != nil {
		return err
	}
	encoded := codec.Encode(ent)
	if err := l.file.Write(encoded); err != nil {
		return err
	}
	return l.file.Sync()
}

// SeekToFirstEntry positions the read cursor at the first Entry,
// immediately after the file header.
func (l *Log) SeekToFirstEntry() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := l.file.Seek(FileHeaderSize, platform.SeekStart)
	return err
}

// Read decodes one Entry from the current cursor position. It returns
// codec.EOF at a clean end of stream, or a dberr/codec/IO error
// otherwise.
func (l *Log) Read() (codec.Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return codec.Decode(fileReader{l.file})
}

// fileReader adapts platform.File to codec.Reader without exposing the
// rest of the File capability to the codec.
type fileReader struct {
	f platform.File
}

func (r fileReader) Read(buf []byte) (int, error) {
	return r.f.Read(buf)
}

// Close releases the underlying file handle. It is not idempotent: a
// second call surfaces whatever the OS returns for an already-closed
// handle. Engine.Close is the idempotent wrapper.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}
