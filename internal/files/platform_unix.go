//go:build !windows

package files

import "os"

// rename is atomic on POSIX filesystems when both paths share a directory.
func renameAtomic(from, to string) error {
	return os.Rename(from, to)
}

// Symlinks are caught by Lstat; there is nothing else to check here.
func isReparsePoint(string) (bool, error) {
	return false, nil
}
