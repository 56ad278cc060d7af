package pathutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/NikitaCOEUR/pshim/internal/derrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "collapses parent", path: "a/b/../c", want: "a/c"},
		{name: "keeps leading parent when relative", path: "a/../../b", want: "../b"},
		{name: "drops parent above root", path: "/a/../../b", want: "/b"},
		{name: "drops dot segments", path: "./a/./b/.", want: "a/b"},
		{name: "empty is current dir", path: "", want: "."},
		{name: "only parents", path: "../..", want: "../.."},
		{name: "root", path: "/", want: "/"},
		{name: "root parent", path: "/..", want: "/"},
		{name: "repeated separators", path: "a//b///c", want: "a/b/c"},
		{name: "collapses to current", path: "a/..", want: "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, filepath.FromSlash(tt.want), Normalize(filepath.FromSlash(tt.path)))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	paths := []string{"a/b/../c", "a/../../b", "/a/../../b", "./x", "/", "..", "a/./b/../../..", "/x/y/z/../.."}

	for _, p := range paths {
		once := Normalize(filepath.FromSlash(p))
		assert.Equal(t, once, Normalize(once), "path %q", p)
	}
}

func TestNormalize_RootedNeverEscapes(t *testing.T) {
	paths := []string{"/..", "/../a", "/a/../../../b", "/./../.."}

	for _, p := range paths {
		got := filepath.ToSlash(Normalize(filepath.FromSlash(p)))
		assert.True(t, strings.HasPrefix(got, "/"), "path %q", p)
		assert.False(t, strings.HasPrefix(got, "/.."), "path %q normalized to %q", p, got)
	}
}

func TestIsWithin(t *testing.T) {
	root := filepath.FromSlash("/r")

	assert.True(t, IsWithin(root, filepath.FromSlash("/r")))
	assert.True(t, IsWithin(root, filepath.FromSlash("/r/a/b")))
	assert.True(t, IsWithin(root, filepath.FromSlash("/r/a/../b")))
	assert.True(t, IsWithin(root, filepath.FromSlash("/r/..foo")))
	assert.False(t, IsWithin(root, filepath.FromSlash("/outside")))
	assert.False(t, IsWithin(root, filepath.FromSlash("/r2")))
	assert.False(t, IsWithin(root, filepath.FromSlash("/r/../x")))
	assert.False(t, IsWithin(root, filepath.FromSlash("/")))
}

// makeTree creates dirs under a temp root and returns the root
func makeTree(t *testing.T, dirs ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0755))
	}
	return root
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0755))
}

func TestFindUpward_ClosestMatch(t *testing.T) {
	root := makeTree(t, "repo/a/b/c")
	touch(t, filepath.Join(root, "repo", "pants"))
	touch(t, filepath.Join(root, "repo", "a", "pants"))

	path, found, err := FindUpward(filepath.Join(root, "repo", "a", "b", "c"), "pants", FindOptions{})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, filepath.Join(root, "repo", "a", "pants"), path)
}

func TestFindUpward_StartDirMatch(t *testing.T) {
	root := makeTree(t, "repo")
	touch(t, filepath.Join(root, "repo", "pants"))

	path, found, err := FindUpward(filepath.Join(root, "repo"), "pants", FindOptions{})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, filepath.Join(root, "repo", "pants"), path)
}

func TestFindUpward_IgnoresDirectories(t *testing.T) {
	root := makeTree(t, "repo/pants", "repo/a")

	_, found, err := FindUpward(filepath.Join(root, "repo", "a"), "pants", FindOptions{StopAt: root})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFindUpward_NotFound(t *testing.T) {
	root := makeTree(t, "a/b")

	path, found, err := FindUpward(filepath.Join(root, "a", "b"), "no-such-marker-file-7f3a", FindOptions{})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, path)
}

func TestFindUpward_StopAt(t *testing.T) {
	root := makeTree(t, "repo/a/b")
	touch(t, filepath.Join(root, "pants"))

	// The marker sits above the stop directory, so it must not be found
	_, found, err := FindUpward(filepath.Join(root, "repo", "a", "b"), "pants", FindOptions{StopAt: filepath.Join(root, "repo")})
	require.NoError(t, err)
	assert.False(t, found)

	// The stop directory itself is still checked
	touch(t, filepath.Join(root, "repo", "pants"))
	path, found, err := FindUpward(filepath.Join(root, "repo", "a", "b"), "pants", FindOptions{StopAt: filepath.Join(root, "repo")})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, filepath.Join(root, "repo", "pants"), path)
}

func TestFindUpward_StopFunc(t *testing.T) {
	root := makeTree(t, "repo/.git", "repo/a")
	touch(t, filepath.Join(root, "pants"))

	var visited []string
	stopAtGitRoot := func(dir string) bool {
		visited = append(visited, dir)
		_, err := os.Stat(filepath.Join(dir, ".git"))
		return err == nil
	}

	_, found, err := FindUpward(filepath.Join(root, "repo", "a"), "pants", FindOptions{StopFunc: stopAtGitRoot})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, []string{filepath.Join(root, "repo", "a"), filepath.Join(root, "repo")}, visited)
}

func TestFindUpward_InvalidStopAt(t *testing.T) {
	root := makeTree(t, "a")
	file := filepath.Join(root, "file")
	touch(t, file)

	tests := []struct {
		name   string
		stopAt string
	}{
		{name: "missing", stopAt: filepath.Join(root, "missing")},
		{name: "not a directory", stopAt: file},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := FindUpward(filepath.Join(root, "a"), "pants", FindOptions{StopAt: tt.stopAt})
			require.Error(t, err)

			var ce *derrors.ConfigurationError
			assert.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.stopAt, ce.Path)
		})
	}
}

func TestIsRegularFile(t *testing.T) {
	root := makeTree(t, "dir")
	file := filepath.Join(root, "BUILD")
	touch(t, file)

	assert.True(t, IsRegularFile(file))
	assert.False(t, IsRegularFile(filepath.Join(root, "dir")))
	assert.False(t, IsRegularFile(filepath.Join(root, "missing")))
}
