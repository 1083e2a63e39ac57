// Package platform is the narrow I/O capability the log consumes: open,
// read, write, seek, sync, close over a single file handle, plus
// directory durability on creation. It is the only place in the storage
// core (codec, log, engine) that touches the filesystem directly; the
// CLI-side config package reads and writes its own YAML file through
// os. This mirrors the split between
// platform.h/platform_unix.cpp and the rest of the original engine.
//
// The reader side is modeled as a single "read some bytes, tell me how
// many" operation rather than an io.Reader wrapper with its own
// short-read conventions, so the entry codec can be driven identically
// from a real file or from an in-memory buffer in tests.
package platform

import (
	"io"
	"os"

	"github.com/cortexkv/kvdb/pkg/dberr"
)

// File is the capability a Log needs from the filesystem. A short write is
// never returned as a partial count; Write either fully writes buf or
// returns an error, matching platform_write's "fully writes or errors"
// contract.
type File interface {
	Read(buf []byte) (n int, err error)
	Write(buf []byte) error
	Seek(offset int64, whence int) (int64, error)
	Sync() error
	Close() error
}

// Whence values, re-exported so callers don't need to import io/os.
const (
	SeekStart   = io.SeekStart
	SeekCurrent = io.SeekCurrent
	SeekEnd     = io.SeekEnd
)

// osFile adapts *os.File to the File interface. Read is passed straight
// through: a zero-length, no-error result on EOF is exactly the signal
// the entry codec is built around.
type osFile struct {
	f *os.File
}

func (o *osFile) Read(buf []byte) (int, error) {
	n, err := o.f.Read(buf)
	if err == io.EOF {
		return n, nil
	}
	return n, err
}

func (o *osFile) Write(buf []byte) error {
	n, err := o.f.Write(buf)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return dberr.ErrIOFailure
	}
	return nil
}

func (o *osFile) Seek(offset int64, whence int) (int64, error) {
	return o.f.Seek(offset, whence)
}

func (o *osFile) Sync() error {
	return o.f.Sync()
}

func (o *osFile) Close() error {
	return o.f.Close()
}

// OpenResult reports whether the file was empty the moment it was
// opened, so the caller (the Log) knows whether to write a fresh file
// header or validate an existing one. Size, not pre-open existence, is
// what matters here: a file that already existed but has zero bytes
// (left behind by a crash between creation and the header write) must
// be treated the same as a brand-new file.
type OpenResult struct {
	File  File
	Empty bool
}

// Open opens path for read+write, creating it if absent. It refuses a
// path that names an existing directory. On first-ever creation it also
// fsyncs the containing directory so the new directory entry survives a
// crash.
func Open(path string) (OpenResult, error) {
	info, statErr := os.Stat(path)
	if statErr == nil && info.IsDir() {
		return OpenResult{}, &os.PathError{Op: "open", Path: path, Err: ErrIsADirectory}
	}

	created := statErr != nil && os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return OpenResult{}, err
	}

	if created {
		if err := syncParentDir(path); err != nil {
			_ = f.Close()
			return OpenResult{}, err
		}
	}

	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		_ = f.Close()
		return OpenResult{}, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()
		return OpenResult{}, err
	}

	return OpenResult{File: &osFile{f: f}, Empty: size == 0}, nil
}
