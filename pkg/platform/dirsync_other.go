//go:build !unix

package platform

import (
	"os"
	"path/filepath"
)

// syncParentDir best-effort-fsyncs the parent directory on platforms
// without a direct directory-fsync primitive (Windows in particular
// durably commits directory entries as part of CreateFile/flush
// semantics).
func syncParentDir(path string) error {
	dir := filepath.Dir(path)

	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()

	_ = f.Sync()
	return nil
}
