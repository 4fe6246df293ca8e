package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/attest/internal/errors"
	"github.com/toyz/attest/internal/utils"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func setupModule(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "go.mod"), "module example.com/demo\n\ngo 1.25\n")
	writeFile(t, filepath.Join(dir, "preds", "preds.go"), annotatedSource)
	return dir
}

func TestGenerate(t *testing.T) {
	dir := setupModule(t)

	gen := NewGeneratorWithDiagnostics(&Config{
		Directories: []string{dir + "/..."},
	}, utils.NewQuietDiagnostics())
	require.NoError(t, gen.Generate())

	summary := gen.Summary()
	assert.Equal(t, 1, summary.PackagesProcessed)
	assert.Equal(t, 2, summary.BindingsFound)
	require.Len(t, summary.GeneratedFiles, 1)

	out, err := os.ReadFile(filepath.Join(dir, "preds", GeneratedFileName))
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "// Code generated by attest. DO NOT EDIT.")
	assert.Contains(t, content, "package sample")
	assert.Contains(t, content, `attest.MustBind(attest.DefaultMethodSet, IsPrime, "is_prime"`)
	assert.Contains(t, content, `attest.WithModule("example.com/demo/preds")`)
	assert.Contains(t, content, `attest.WithSignature("(n)")`)
	assert.Contains(t, content, `attest.WithDoc("reports whether n is prime.")`)
	assert.Contains(t, content, `attest.MustBind(attest.DefaultMethodSet, CheckLenEq, "check_len_eq"`)
}

func TestGenerateCustomTarget(t *testing.T) {
	dir := setupModule(t)

	gen := NewGeneratorWithDiagnostics(&Config{
		Directories: []string{filepath.Join(dir, "preds")},
		Target:      "Catalog",
	}, utils.NewQuietDiagnostics())
	require.NoError(t, gen.Generate())

	out, err := os.ReadFile(filepath.Join(dir, "preds", GeneratedFileName))
	require.NoError(t, err)
	assert.Contains(t, string(out), `attest.MustBind(Catalog, IsPrime, "is_prime"`)
}

func TestGenerateCustomModule(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "preds", "preds.go"), annotatedSource)
	chdir(t, dir)

	gen := NewGeneratorWithDiagnostics(&Config{
		Directories: []string{"./preds"},
		ModuleName:  "example.com/other",
	}, utils.NewQuietDiagnostics())
	require.NoError(t, gen.Generate())

	out, err := os.ReadFile(filepath.Join(dir, "preds", GeneratedFileName))
	require.NoError(t, err)
	assert.Contains(t, string(out), `attest.WithModule("example.com/other/preds")`)
}

func TestGenerateDuplicateMethodNames(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "go.mod"), "module example.com/demo\n\ngo 1.25\n")
	writeFile(t, filepath.Join(dir, "dup.go"), `package dup

//attest::bind same
func First() bool { return true }

//attest::bind same
func Second() bool { return true }
`)

	gen := NewGeneratorWithDiagnostics(&Config{
		Directories: []string{dir},
	}, utils.NewQuietDiagnostics())
	err := gen.Generate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `method name "same" bound by both First and Second`)
}

func TestGenerateRejectsInvalidSignature(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "go.mod"), "module example.com/demo\n\ngo 1.25\n")
	writeFile(t, filepath.Join(dir, "bad.go"), `package bad

//attest::bind signature="(a"
func F(a int) bool { return true }
`)

	gen := NewGeneratorWithDiagnostics(&Config{
		Directories: []string{dir},
	}, utils.NewQuietDiagnostics())
	err := gen.Generate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid signature declaration for F")

	_, statErr := os.Stat(filepath.Join(dir, GeneratedFileName))
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateCollectsFailuresAcrossPackages(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "go.mod"), "module example.com/demo\n\ngo 1.25\n")
	writeFile(t, filepath.Join(dir, "bad1", "bad1.go"), `package bad1

//attest::bind color=red
func F() bool { return true }
`)
	writeFile(t, filepath.Join(dir, "bad2", "bad2.go"), `package bad2

//attest::bind signature="(a"
func G(a int) bool { return true }
`)
	writeFile(t, filepath.Join(dir, "good", "good.go"), annotatedSource)

	gen := NewGeneratorWithDiagnostics(&Config{
		Directories: []string{dir + "/..."},
	}, utils.NewQuietDiagnostics())
	err := gen.Generate()
	require.Error(t, err)

	// Both failures surface in a single run.
	var multi *errors.MultipleErrors
	require.ErrorAs(t, err, &multi)
	assert.Equal(t, 2, multi.Count())
	assert.Contains(t, err.Error(), `unknown directive key "color"`)
	assert.Contains(t, err.Error(), "invalid signature declaration for G")

	// The healthy package is still generated.
	_, statErr := os.Stat(filepath.Join(dir, "good", GeneratedFileName))
	assert.NoError(t, statErr)
}

func TestGenerateSkipsPackagesWithoutDirectives(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "go.mod"), "module example.com/demo\n\ngo 1.25\n")
	writeFile(t, filepath.Join(dir, "plain", "plain.go"), "package plain\n\nfunc F() {}\n")

	gen := NewGeneratorWithDiagnostics(&Config{
		Directories: []string{dir + "/..."},
	}, utils.NewQuietDiagnostics())
	require.NoError(t, gen.Generate())

	assert.Equal(t, 0, gen.Summary().PackagesProcessed)
	_, err := os.Stat(filepath.Join(dir, "plain", GeneratedFileName))
	assert.True(t, os.IsNotExist(err))
}
