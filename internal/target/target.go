// Package target parses build target references and rewrites them relative to the repo root.
//
// A reference has the form path:name. The path may be repo-root-relative ("//src/app"),
// absolute ("/home/me/repo/src/app") or relative to the current directory ("app").
// After parsing, every form becomes the canonical repo-relative path the build tool expects.
package target

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/NikitaCOEUR/pshim/internal/derrors"
	"github.com/NikitaCOEUR/pshim/internal/pathutil"
)

const (
	// Separator splits the path from the target name
	Separator = ":"
	// RootPrefix marks a path relative to the repo root
	RootPrefix = "//"
)

// Address is a target reference resolved against a repo root
type Address struct {
	// Path is relative to the repo root, "." for the root itself
	Path string
	// Name is the bare target name; empty means every target at Path
	Name string
}

// PathSpec renders the repo-relative path the way the build tool spells it.
// The repo root has no relative spelling and is written as "//".
func (a Address) PathSpec() string {
	if a.Path == "." || a.Path == "" {
		return RootPrefix
	}
	return filepath.ToSlash(a.Path)
}

// String returns the canonical path:name form
func (a Address) String() string {
	return a.PathSpec() + Separator + a.Name
}

// Dir returns the absolute directory the address points at
func (a Address) Dir(repoRoot string) string {
	return filepath.Join(repoRoot, a.Path)
}

// IsReference reports whether s contains a path:name separator
func IsReference(s string) bool {
	return strings.Contains(s, Separator)
}

// Parse resolves s, which must contain ":", against cwd and repoRoot.
// It fails when the path resolves outside repoRoot.
func Parse(s, cwd, repoRoot string) (Address, error) {
	pathStr, name, ok := strings.Cut(s, Separator)
	if !ok {
		return Address{}, derrors.NewValidationError("target", fmt.Sprintf("%q is not a target reference", s), nil)
	}

	var absPath string
	switch {
	case strings.HasPrefix(pathStr, RootPrefix):
		absPath = filepath.Join(repoRoot, filepath.FromSlash(pathStr[len(RootPrefix):]))
	case filepath.IsAbs(pathStr):
		absPath = pathStr
	default:
		absPath = filepath.Join(cwd, filepath.FromSlash(pathStr))
	}
	absPath = pathutil.Normalize(absPath)
	root := pathutil.Normalize(repoRoot)

	if !pathutil.IsWithin(root, absPath) {
		return Address{}, derrors.NewValidationError("target", fmt.Sprintf("%s is not in repo %s", absPath, root), nil)
	}

	rel, err := filepath.Rel(root, absPath)
	if err != nil {
		return Address{}, derrors.NewValidationError("target", fmt.Sprintf("%s is not in repo %s", absPath, root), err)
	}

	return Address{Path: rel, Name: name}, nil
}

// RewriteArg canonicalizes a single command line argument.
// A leading "-opt=" prefix is preserved and the rest rewritten; a value containing ":"
// is treated as a target reference; anything else passes through untouched.
func RewriteArg(arg, cwd, repoRoot string) (string, error) {
	var prefix string
	if strings.HasPrefix(arg, "-") {
		if opt, value, ok := strings.Cut(arg, "="); ok {
			prefix = opt + "="
			arg = value
		}
	}

	if !IsReference(arg) {
		return prefix + arg, nil
	}

	addr, err := Parse(arg, cwd, repoRoot)
	if err != nil {
		return "", err
	}
	return prefix + addr.String(), nil
}

// RewriteArgs applies RewriteArg to every argument, stopping at the first error
func RewriteArgs(args []string, cwd, repoRoot string) ([]string, error) {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		rewritten, err := RewriteArg(arg, cwd, repoRoot)
		if err != nil {
			return nil, err
		}
		out = append(out, rewritten)
	}
	return out, nil
}
