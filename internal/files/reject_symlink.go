package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RejectSymlinkPath returns an error if any existing component of the path
// is a symlink. Translated books are written with the user's privileges;
// following a planted link would let the output clobber an unrelated file.
func RejectSymlinkPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path is empty")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	for _, prefix := range pathPrefixes(abs) {
		info, err := os.Lstat(prefix)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				// Components past the first missing one cannot exist either.
				return nil
			}
			return fmt.Errorf("failed to access path: %w", err)
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("refusing to write to symlink path: %s (symlink detected at %s)", abs, prefix)
		}
		if isReparse, err := isReparsePoint(prefix); err != nil {
			return fmt.Errorf("failed to check reparse point: %w", err)
		} else if isReparse {
			return fmt.Errorf("refusing to write to symlink path: %s (reparse point detected at %s)", abs, prefix)
		}
	}
	return nil
}

// pathPrefixes expands an absolute path into every ancestor prefix,
// shallowest first, excluding the root itself.
func pathPrefixes(abs string) []string {
	var prefixes []string
	for p := abs; ; {
		parent := filepath.Dir(p)
		if parent == p {
			break
		}
		prefixes = append(prefixes, p)
		p = parent
	}
	for i, j := 0, len(prefixes)-1; i < j; i, j = i+1, j-1 {
		prefixes[i], prefixes[j] = prefixes[j], prefixes[i]
	}
	return prefixes
}
