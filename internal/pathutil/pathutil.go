// Package pathutil provides lexical path normalization and upward file search.
package pathutil

import (
	"os"
	"path/filepath"

	"github.com/NikitaCOEUR/pshim/internal/derrors"
)

// Normalize lexically resolves "." and ".." segments without touching the filesystem.
// Leading ".." segments are kept for relative paths and dropped for rooted ones,
// so "a/../../b" becomes "../b" and "/a/../../b" becomes "/b".
func Normalize(path string) string {
	return filepath.Clean(path)
}

// IsWithin reports whether path is root itself or lies under it. Both are normalized first.
func IsWithin(root, path string) bool {
	rel, err := filepath.Rel(Normalize(root), Normalize(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !hasParentPrefix(rel))
}

func hasParentPrefix(rel string) bool {
	return len(rel) > 2 && rel[:2] == ".." && os.IsPathSeparator(rel[2])
}

// FindOptions bounds an upward search
type FindOptions struct {
	// StopAt ends the search after checking this directory. It must be an existing directory.
	StopAt string
	// StopFunc ends the search after checking a directory for which it returns true.
	StopFunc func(dir string) bool
}

// FindUpward looks for a regular file named filename in startDir and each of its parents.
// It returns the path of the closest match, or found=false once StopAt, StopFunc or the
// filesystem root ends the search.
func FindUpward(startDir, filename string, opts FindOptions) (string, bool, error) {
	if opts.StopAt != "" {
		info, err := os.Stat(opts.StopAt)
		if err != nil {
			return "", false, derrors.NewConfigurationError(opts.StopAt, "stop directory does not exist", err)
		}
		if !info.IsDir() {
			return "", false, derrors.NewConfigurationError(opts.StopAt, "stop path must be a directory", nil)
		}
		if abs, err := filepath.Abs(opts.StopAt); err == nil {
			opts.StopAt = abs
		}
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, derrors.NewConfigurationError(startDir, "failed to resolve start directory", err)
	}

	for {
		candidate := filepath.Join(dir, filename)
		if IsRegularFile(candidate) {
			return candidate, true, nil
		}

		if opts.StopAt != "" && dir == opts.StopAt {
			return "", false, nil
		}
		if opts.StopFunc != nil && opts.StopFunc(dir) {
			return "", false, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return "", false, nil
		}
		dir = parent
	}
}

// IsRegularFile reports whether path exists and is a regular file (symlinks are followed).
func IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
