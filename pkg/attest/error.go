package attest

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/toyz/attest/internal/models"
)

// ErrAssertionFailed is the sentinel all assertion failures match via
// errors.Is. It is never a valid target for the exception parameter.
var ErrAssertionFailed = stderrors.New("assertion failed")

// Error describes a failed assertion: the evaluated expression, the
// produced output, every argument by parameter name, and the
// underlying error when the call itself failed.
type Error struct {
	Name    string
	Args    []any
	Output  any
	Invert  bool
	Message string
	Cause   error

	detail string
}

func (e *Error) Error() string {
	return e.detail
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrAssertionFailed, e.Cause}
	}
	return []error{ErrAssertionFailed}
}

// rebuild renders the full failure report. Parameter names come from
// the callable's declared signature where available; extra arguments
// fall back to positional labels.
func (e *Error) rebuild(r *Repr, c *models.Callable) {
	if r == nil {
		r = NewRepr()
	}
	names := argNames(c, len(e.Args))

	not := ""
	if e.Invert {
		not = "not "
	}
	var b strings.Builder
	fmt.Fprintf(&b, "output = %s%s(%s); assert output", not, e.Name, strings.Join(names, ", "))

	if e.Message != "" {
		b.WriteString("\n\n")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, "\n\nexception: %s = %s", r.TypeName(e.Cause), r.Render(e.Cause))
	}
	fmt.Fprintf(&b, "\n\noutput: %s = %s", r.TypeName(e.Output), r.Render(e.Output))
	for i, arg := range e.Args {
		fmt.Fprintf(&b, "\n%s: %s = %s", names[i], r.TypeName(arg), r.Render(arg))
	}
	e.detail = b.String()
}

// argNames maps positional arguments to display names from the
// callable's parameters, skipping the bound instance and any appended
// control parameters.
func argNames(c *models.Callable, n int) []string {
	names := make([]string, 0, n)
	if c != nil {
		for _, p := range c.Params {
			if len(names) == n {
				break
			}
			if p.Reserved || p.Kind == models.ParamVarPositional || p.Kind == models.ParamVarKeyword {
				continue
			}
			names = append(names, p.Name)
		}
	}
	for len(names) < n {
		names = append(names, fmt.Sprintf("arg%d", len(names)))
	}
	return names
}
