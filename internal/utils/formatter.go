package utils

import (
	"fmt"
	"go/format"

	"golang.org/x/tools/imports"
)

// FormatGoSource formats generated Go source and fixes up its import
// block. The filename is used to resolve relative imports and may name
// a file that does not exist yet.
func FormatGoSource(filename string, source []byte) ([]byte, error) {
	formatted, err := imports.Process(filename, source, nil)
	if err == nil {
		return formatted, nil
	}

	// Fall back to plain gofmt so syntactically valid output still gets
	// canonical formatting even when import resolution fails.
	formatted, fmtErr := format.Source(source)
	if fmtErr != nil {
		return nil, fmt.Errorf("invalid Go syntax: %w (imports error: %v)", fmtErr, err)
	}
	return formatted, nil
}
