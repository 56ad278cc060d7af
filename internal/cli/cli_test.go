package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NikitaCOEUR/pshim/internal/config"
	"github.com/stretchr/testify/require"
)

// newRepo creates a repo with a pants launcher at its root and a BUILD file in src/app
func newRepo(t *testing.T) string {
	t.Helper()
	repo := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(repo, "pants"), []byte("#!/bin/sh\n"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(repo, "src", "app"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(repo, "src", "app", "BUILD"), []byte("python_sources(name=\"lib\")\n"), 0644))
	return repo
}

func defaultConfig() *config.Config {
	return &config.Config{
		BinName:       "pants",
		BuildFile:     "BUILD",
		CompleteGoals: true,
		Echo:          true,
		LogLevel:      "warn",
	}
}

func writeExecutable(path string) error {
	return os.WriteFile(path, []byte("#!/bin/sh\n"), 0755)
}
