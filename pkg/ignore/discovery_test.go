package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func TestDiscoverMatchesIncludePattern(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src", "a.tsx"), "a")
	writeFile(t, filepath.Join(dir, "src", "b.css"), "b")

	files, err := Discover(dir, []string{"**/*.tsx"}, nil)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Contains(t, files[0], "a.tsx")
}

func TestDiscoverAppliesExplicitIgnorePattern(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src", "a.tsx"), "a")
	writeFile(t, filepath.Join(dir, "src", "a.test.tsx"), "a")

	files, err := Discover(dir, []string{"**/*.tsx"}, []string{"**/*.test.tsx"})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.NotContains(t, files[0], "test")
}

func TestDiscoverAlwaysExcludesNodeModules(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "node_modules", "pkg", "a.tsx"), "a")
	writeFile(t, filepath.Join(dir, "src", "b.tsx"), "b")

	files, err := Discover(dir, []string{"**/*.tsx"}, nil)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Contains(t, files[0], "b.tsx")
}

func TestDiscoverRejectsInvalidIncludePattern(t *testing.T) {
	dir := t.TempDir()
	_, err := Discover(dir, []string{"["}, nil)
	assert.Error(t, err)
}

func TestDiscoverReturnsSortedPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "z.tsx"), "z")
	writeFile(t, filepath.Join(dir, "a.tsx"), "a")

	files, err := Discover(dir, []string{"*.tsx"}, nil)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.True(t, files[0] < files[1])
}
