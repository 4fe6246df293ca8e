package attest

import (
	"github.com/toyz/attest/internal/models"
)

// Callable describes a source callable: the callable value plus the
// introspected or declared metadata the synthesis pipeline reads.
type Callable = models.Callable

// Signature is an augmented parameter list derived from a callable.
type Signature = models.Signature

// Parameter is a single slot in a signature.
type Parameter = models.Parameter

// DescribeOption customizes how a callable is described during Bind.
type DescribeOption = models.DescribeOption

// Caller is the receiver contract generated methods delegate to: the
// generic assert_ operation every synthesized call site forwards its
// arguments and control parameters into. *Asserter implements it.
type Caller interface {
	AssertCall(c *Callable, rendered string, args []any, opts CallOptions) error
}

// Method is a synthesized assertion method: the forwarding plan for
// one source callable, plus its generated documentation.
type Method struct {
	// Name is the method's installed name
	Name string

	// Doc is the generated documentation text
	Doc string

	// Signature is the augmented signature the method forwards
	Signature *Signature

	// Rendered is the call-expression text of the forwarded call,
	// embedded in failure messages
	Rendered string

	// KwDefaults maps keyword-only parameter names to their defaults
	KwDefaults map[string]any

	// Annotations maps parameter names (plus "return") to type display
	// text; return is always "no value", invert always bool, exception
	// always an optional error
	Annotations map[string]string

	callable *Callable
}

// Callable returns the descriptor of the source callable
func (m *Method) Callable() *Callable {
	return m.callable
}

// Invoke performs the assertion against recv, forwarding the supplied
// arguments and any trailing Options verbatim
func (m *Method) Invoke(recv Caller, args ...any) error {
	positional, opts := splitArgs(args)
	return recv.AssertCall(m.callable, m.Rendered, positional, opts)
}

// Func returns a closure performing the assertion against recv, useful
// when a plain func value is more convenient than a Method
func (m *Method) Func(recv Caller) func(args ...any) error {
	return func(args ...any) error {
		return m.Invoke(recv, args...)
	}
}
