package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/toyz/attest/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting for
// generation failures
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a new diagnostic reporter
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     os.Stderr,
	}
}

// SetOutput redirects the reporter, primarily for tests
func (r *DiagnosticReporter) SetOutput(out io.Writer) {
	r.out = out
}

// ReportWarning provides user-friendly warning reporting
func (r *DiagnosticReporter) ReportWarning(message string) {
	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", message)
}

// ReportError reports a generation failure with guidance based on the
// structured error code
func (r *DiagnosticReporter) ReportError(err error) {
	fmt.Fprintf(r.out, "\nERROR: Code Generation Failed\n")
	fmt.Fprintf(r.out, "=============================\n\n")

	switch e := err.(type) {
	case *errors.MultipleErrors:
		for i, sub := range e.Errors {
			if i > 0 {
				fmt.Fprintf(r.out, "-----------------------------\n\n")
			}
			if baseErr, ok := sub.(*errors.BaseError); ok {
				r.reportBaseError(baseErr)
			} else {
				fmt.Fprintf(r.out, "Message: %s\n\n", sub.Error())
			}
		}
	case *errors.BaseError:
		r.reportBaseError(e)
	default:
		fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())
	}

	fmt.Fprintf(r.out, "\n")
}

func (r *DiagnosticReporter) reportBaseError(baseErr *errors.BaseError) {
	fmt.Fprintf(r.out, "Message: %s\n\n", baseErr.Message)

	if r.verbose && baseErr.Cause != nil {
		fmt.Fprintf(r.out, "Underlying cause: %s\n\n", baseErr.Cause.Error())
	}
	if !baseErr.Loc.IsEmpty() {
		fmt.Fprintf(r.out, "Location: %s\n\n", baseErr.Loc.String())
	}
	if len(baseErr.Hints) > 0 {
		fmt.Fprintf(r.out, "Suggestions:\n")
		for _, hint := range baseErr.Hints {
			fmt.Fprintf(r.out, "  - %s\n", hint)
		}
		fmt.Fprintf(r.out, "\n")
	}

	r.printGuidance(baseErr.Code)
}

// printGuidance prints common solutions for the error class
func (r *DiagnosticReporter) printGuidance(code errors.ErrorCode) {
	switch code {
	case errors.SyntaxErrorCode:
		fmt.Fprintf(r.out, "This appears to be a directive syntax issue.\n")
		fmt.Fprintf(r.out, "Common solutions:\n")
		fmt.Fprintf(r.out, "  - Check your //attest::bind directive syntax\n")
		fmt.Fprintf(r.out, "  - Quote signature declarations: signature=\"(a, b)\"\n")
		fmt.Fprintf(r.out, "  - Declarations use parameter names, not Go types\n")
	case errors.ConfigurationErrorCode:
		fmt.Fprintf(r.out, "This appears to be a configuration issue.\n")
		fmt.Fprintf(r.out, "Common solutions:\n")
		fmt.Fprintf(r.out, "  - Check your go.mod file\n")
		fmt.Fprintf(r.out, "  - Check your .attest.yaml syntax\n")
		fmt.Fprintf(r.out, "  - Try specifying --module explicitly\n")
	case errors.FileSystemErrorCode:
		fmt.Fprintf(r.out, "This appears to be a filesystem issue.\n")
		fmt.Fprintf(r.out, "Common solutions:\n")
		fmt.Fprintf(r.out, "  - Check directory paths and permissions\n")
		fmt.Fprintf(r.out, "  - Use Go-style patterns like ./... for recursion\n")
	}
}
