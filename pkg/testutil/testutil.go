// Package testutil provides shared helpers for tests: in-memory file
// trees and isolation of the XDG environment.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// FileTree builds an in-memory filesystem populated with the given files.
// Keys are paths, values are file contents; parent directories are
// created as needed.
func FileTree(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
	return fs
}

// WriteTree writes the given files into dir on the real filesystem,
// creating parent directories as needed, and returns their paths.
func WriteTree(t *testing.T, dir string, files map[string]string) []string {
	t.Helper()

	osFs := afero.NewOsFs()
	paths := make([]string, 0, len(files))
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, osFs.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(osFs, path, []byte(content), 0644))
		paths = append(paths, path)
	}
	return paths
}

// IsolateXDG points the XDG state directory at a temp dir for the
// duration of the test, so nothing writes into the real state home.
// xdg caches the environment at init, so a reload is forced both ways.
func IsolateXDG(t *testing.T) string {
	t.Helper()

	stateDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateDir)
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return stateDir
}
