package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func writeGoMod(t *testing.T, dir, module string) string {
	t.Helper()
	path := filepath.Join(dir, "go.mod")
	require.NoError(t, os.WriteFile(path, []byte("module "+module+"\n\ngo 1.25\n"), 0644))
	return path
}

func TestParseModuleName(t *testing.T) {
	path := writeGoMod(t, t.TempDir(), "example.com/demo")

	name, err := ParseModuleName(path)
	require.NoError(t, err)
	assert.Equal(t, "example.com/demo", name)
}

func TestParseModuleNameRejectsOtherFiles(t *testing.T) {
	_, err := ParseModuleName("main.go")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a go.mod file")
}

func TestFindGoModFileWalksUp(t *testing.T) {
	root := t.TempDir()
	writeGoMod(t, root, "example.com/demo")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	path, err := FindGoModFile(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "go.mod"), path)
}

func TestModulePathForDir(t *testing.T) {
	root := t.TempDir()
	writeGoMod(t, root, "example.com/demo")
	nested := filepath.Join(root, "pkg", "sub")
	require.NoError(t, os.MkdirAll(nested, 0755))

	path, err := ModulePathForDir(nested)
	require.NoError(t, err)
	assert.Equal(t, "example.com/demo/pkg/sub", path)

	path, err = ModulePathForDir(root)
	require.NoError(t, err)
	assert.Equal(t, "example.com/demo", path)
}

func TestJoinModulePath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "preds"), 0755))
	chdir(t, dir)

	path, err := JoinModulePath("example.com/demo", ".")
	require.NoError(t, err)
	assert.Equal(t, "example.com/demo", path)

	path, err = JoinModulePath("example.com/demo", "./preds")
	require.NoError(t, err)
	assert.Equal(t, "example.com/demo/preds", path)
}
