package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
	return path
}

func TestFindFilesByExtension_MixedExtensionsKeepWalkOrder(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a.yml")
	b := touch(t, dir, "b.yaml")
	c := touch(t, dir, "c.yml")
	touch(t, dir, "d.txt")

	files, err := FindFilesByExtension(dir, ".yaml", ".yml")
	require.NoError(t, err)
	assert.Equal(t, []string{a, b, c}, files)
}

func TestFindFilesByExtension_FileRoot(t *testing.T) {
	dir := t.TempDir()
	manifest := touch(t, dir, "weight.hcl")

	files, err := FindFilesByExtension(manifest, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{manifest}, files)
}

func TestFindFilesByExtension_MissingRoot(t *testing.T) {
	_, err := FindFilesByExtension(filepath.Join(t.TempDir(), "nope"), ".hcl")
	require.Error(t, err)
}
