//go:build unix

package platform

import (
	"path/filepath"

	"golang.org/x/sys/unix"
)

// syncParentDir fsyncs the directory containing path so that the newly
// created file's directory entry is durable across a crash, matching
// platform_unix.cpp's explicit O_DIRECTORY-open-then-fsync sequence.
func syncParentDir(path string) error {
	dir := filepath.Dir(path)

	fd, err := unix.Open(dir, unix.O_RDONLY|unix.O_DIRECTORY, 0)
	if err != nil {
		return err
	}
	defer unix.Close(fd)

	return unix.Fsync(fd)
}
