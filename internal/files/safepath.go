package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// maxNumbered is how many "_N" names SafePath tries before falling back to
// a random suffix.
const maxNumbered = 9

// SafePath returns path when nothing exists there. Otherwise it returns the
// first free "name_N.ext" for N up to 9, then "name_<uuid8>.ext". The bool
// reports whether the name changed.
func SafePath(path string) (string, bool, error) {
	if path == "" {
		return "", false, errors.New("path is empty")
	}
	free, err := isFree(path)
	if err != nil || free {
		return path, false, err
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for n := 1; n <= maxNumbered; n++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, n, ext)
		free, err := isFree(candidate)
		if err != nil {
			return "", false, err
		}
		if free {
			return candidate, true, nil
		}
	}
	return fmt.Sprintf("%s_%s%s", stem, uuid.NewString()[:8], ext), true, nil
}

func isFree(path string) (bool, error) {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, fs.ErrNotExist):
		return true, nil
	}
	return false, err
}
