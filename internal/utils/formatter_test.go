package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatGoSource(t *testing.T) {
	src := []byte("package x\n\nfunc  A( )  bool {\nreturn true}\n")

	formatted, err := FormatGoSource("x.go", src)
	require.NoError(t, err)
	assert.Contains(t, string(formatted), "func A() bool {\n\treturn true\n}")
}

func TestFormatGoSourceRejectsInvalidSyntax(t *testing.T) {
	_, err := FormatGoSource("x.go", []byte("package x\n\nfunc {{{\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid Go syntax")
}
