package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkSkipsDenylistedDirectories(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(root, "app.js"), []byte("function app() {}\n"), 0o644))

	nodeModules := filepath.Join(root, "node_modules")
	require.NoError(t, os.Mkdir(nodeModules, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(nodeModules, "lib.js"), []byte("function calculatePrice() {}\n"), 0o644))

	descriptors, err := Walk(root)
	require.NoError(t, err)

	require.Len(t, descriptors, 1)
	assert.Equal(t, "app.js", descriptors[0].PathRelativeToRoot)
}

func TestWalkSkipsDotDirectories(t *testing.T) {
	root := t.TempDir()
	gitDir := filepath.Join(root, ".git")
	require.NoError(t, os.Mkdir(gitDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(gitDir, "hooks.py"), []byte("def x(): pass\n"), 0o644))

	descriptors, err := Walk(root)
	require.NoError(t, err)
	assert.Empty(t, descriptors)
}

func TestWalkOnlyRecognizedExtensions(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "readme.md"), []byte("# hi\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.py"), []byte("def main(): pass\n"), 0o644))

	descriptors, err := Walk(root)
	require.NoError(t, err)
	require.Len(t, descriptors, 1)
	assert.Equal(t, Python, descriptors[0].LanguageTag)
}

func TestWalkDeterministicOrder(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.py"), []byte("def b(): pass\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("def a(): pass\n"), 0o644))

	descriptors, err := Walk(root)
	require.NoError(t, err)
	require.Len(t, descriptors, 2)
	assert.Equal(t, "a.py", descriptors[0].PathRelativeToRoot)
	assert.Equal(t, "b.py", descriptors[1].PathRelativeToRoot)
}

func TestWalkRejectsNonDirectory(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "notadir.py")
	require.NoError(t, os.WriteFile(file, []byte("def a(): pass\n"), 0o644))

	_, err := Walk(file)
	assert.Error(t, err)
}

func TestWalkMissingPath(t *testing.T) {
	_, err := Walk(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}
