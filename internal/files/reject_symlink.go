package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrSymlinkPath marks a write target that resolves through a link.
var ErrSymlinkPath = errors.New("refusing to write through a symlink")

// SymlinkError names the link found on the way to Path.
type SymlinkError struct {
	Path    string
	At      string
	Reparse bool
}

func (e *SymlinkError) Error() string {
	kind := "symlink"
	if e.Reparse {
		kind = "reparse point"
	}
	return fmt.Sprintf("refusing to write to %s: %s at %s", e.Path, kind, e.At)
}

func (e *SymlinkError) Unwrap() error { return ErrSymlinkPath }

// RejectSymlinkPath fails when path, or any existing directory above it, is
// a link. Components that do not exist yet are fine.
func RejectSymlinkPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	for _, p := range ancestors(abs) {
		info, err := os.Lstat(p)
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to access path: %w", err)
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return &SymlinkError{Path: abs, At: p}
		}
		reparse, err := isReparsePoint(p)
		if err != nil {
			return fmt.Errorf("failed to check reparse point: %w", err)
		}
		if reparse {
			return &SymlinkError{Path: abs, At: p, Reparse: true}
		}
	}
	return nil
}

// ancestors lists abs and its parents from the top down, excluding the
// volume root.
func ancestors(abs string) []string {
	var out []string
	for p := abs; ; {
		parent := filepath.Dir(p)
		if parent == p {
			break
		}
		out = append(out, p)
		p = parent
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
