package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("ls\n"), 0o644))
}

func TestDiscoverDirectory(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.nu"))
	touch(t, filepath.Join(dir, "sub", "b.nu"))
	touch(t, filepath.Join(dir, "notes.txt"))

	files, err := Discover([]string{dir}, Options{})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "a.nu"), files[0])
	assert.Equal(t, filepath.Join(dir, "sub", "b.nu"), files[1])
}

func TestDiscoverExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.txt")
	touch(t, path)

	files, err := Discover([]string{path}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestDiscoverExcludes(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "keep.nu"))
	touch(t, filepath.Join(dir, "vendor", "skip.nu"))

	files, err := Discover([]string{dir}, Options{ExcludePatterns: []string{"**/vendor/**"}})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Contains(t, files[0], "keep.nu")
}

func TestDiscoverDeduplicates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.nu")
	touch(t, path)

	files, err := Discover([]string{path, dir}, Options{})
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestDiscoverMissingInput(t *testing.T) {
	_, err := Discover([]string{filepath.Join(t.TempDir(), "missing.nu")}, Options{})
	assert.Error(t, err)
}
