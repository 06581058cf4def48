package files

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/oukeidos/promise/internal/logger"
)

// AtomicWrite replaces path with data in one rename.
func AtomicWrite(path string, data []byte, perms os.FileMode) error {
	return AtomicWriteFunc(path, perms, func(w io.Writer) error {
		_, err := bytes.NewReader(data).WriteTo(w)
		return err
	})
}

// AtomicWriteFunc streams write into a sibling temp file and renames it over
// path once the data is flushed to disk. path is left as it was when any step
// fails.
func AtomicWriteFunc(path string, perms os.FileMode, write func(io.Writer) error) error {
	if err := RejectSymlinkPath(path); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".promise-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if err := fill(tmp, perms, write); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := renameAtomic(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to move temp file into place: %w", err)
	}

	if err := syncDir(dir); err != nil {
		logger.Debug("Directory fsync failed", "path", dir, "error", err)
	}
	return nil
}

// fill writes, syncs and closes f. f is closed only on success.
func fill(f *os.File, perms os.FileMode, write func(io.Writer) error) error {
	steps := []struct {
		what string
		do   func() error
	}{
		{"set temp file permissions", func() error { return f.Chmod(perms) }},
		{"write temp file", func() error { return write(f) }},
		{"sync temp file", f.Sync},
		{"close temp file", f.Close},
	}
	for _, s := range steps {
		if err := s.do(); err != nil {
			return fmt.Errorf("failed to %s: %w", s.what, err)
		}
	}
	return nil
}

func syncDir(dir string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
