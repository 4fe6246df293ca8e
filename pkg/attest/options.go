package attest

import "fmt"

// CallOptions carries the reserved control parameters of a single
// assertion call. Generated methods forward it verbatim to the
// receiver's AssertCall operation.
type CallOptions struct {
	// Invert flips the assertion: assert not f(...)
	Invert bool

	// Exception, when non-nil, asserts that the call fails (by error
	// return or panic) with an error matching it
	Exception error

	// PostProcess, when non-nil, is applied to the callable's output
	// before the truthiness check
	PostProcess func(any) any

	// Message is an extra description appended to failure output
	Message string
}

// Option adjusts a single assertion call. Options are passed in the
// variadic argument tail of a generated method.
type Option func(*CallOptions)

// Invert inverts the output of the assertion
func Invert() Option {
	return func(o *CallOptions) { o.Invert = true }
}

// Exception asserts that the given error is raised during the
// assertion operation
func Exception(target error) Option {
	return func(o *CallOptions) { o.Exception = target }
}

// PostProcess applies fn to the callable's output before the
// truthiness check
func PostProcess(fn func(any) any) Option {
	return func(o *CallOptions) { o.PostProcess = fn }
}

// Message attaches a custom description to failure output
func Message(format string, args ...any) Option {
	return func(o *CallOptions) { o.Message = fmt.Sprintf(format, args...) }
}

// splitArgs separates Option values from the positional arguments of a
// method invocation
func splitArgs(args []any) ([]any, CallOptions) {
	var opts CallOptions
	positional := make([]any, 0, len(args))
	for _, arg := range args {
		if opt, ok := arg.(Option); ok {
			opt(&opts)
			continue
		}
		positional = append(positional, arg)
	}
	return positional, opts
}
