package attest

import (
	stderrors "errors"
	"sort"

	"github.com/toyz/attest/internal/errors"
	"github.com/toyz/attest/internal/models"
)

// Asserter evaluates assertions through its method table. It is the
// "instance level" attachment target: methods installed directly on an
// Asserter shadow same-named methods of the shared MethodSet for that
// instance only.
type Asserter struct {
	set   *MethodSet
	local map[string]*Method
	repr  *Repr
}

// New creates an Asserter backed by DefaultMethodSet
func New() *Asserter {
	return NewWithSet(DefaultMethodSet)
}

// NewWithSet creates an Asserter backed by the given method set
func NewWithSet(set *MethodSet) *Asserter {
	if set == nil {
		set = NewMethodSet()
	}
	return &Asserter{
		set:   set,
		local: make(map[string]*Method),
		repr:  NewRepr(),
	}
}

// SetRepr replaces the value renderer used in failure messages
func (a *Asserter) SetRepr(r *Repr) {
	if r == nil {
		r = NewRepr()
	}
	a.repr = r
}

// Install adds an instance-level method, shadowing any set-level
// method of the same name for this instance only. It implements
// Target.
func (a *Asserter) Install(name string, m *Method) {
	a.local[name] = m
}

// Method retrieves a method by name, instance-level methods first
func (a *Asserter) Method(name string) (*Method, bool) {
	if m, ok := a.local[name]; ok {
		return m, true
	}
	return a.set.Method(name)
}

// Names returns the sorted names of all reachable methods
func (a *Asserter) Names() []string {
	seen := make(map[string]bool)
	var out []string
	for name := range a.local {
		seen[name] = true
		out = append(out, name)
	}
	for _, name := range a.set.Names() {
		if !seen[name] {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Call invokes the named assertion method, forwarding args and any
// trailing Options
func (a *Asserter) Call(name string, args ...any) error {
	m, ok := a.Method(name)
	if !ok {
		return errors.Newf(errors.BindErrorCode, "no assertion method named %q", name)
	}
	return m.Invoke(a, args...)
}

// AddToInstance binds a new assertion method to this instance only.
// Unless override is set, it refuses to shadow an existing method of
// the same name.
func (a *Asserter) AddToInstance(fn any, override bool, name string, opts ...DescribeOption) error {
	methodName := name
	if methodName == "" {
		methodName = models.Describe(fn, opts...).Name
		if methodName == "" {
			return errors.MissingNameError(describeValue(fn))
		}
	}
	if _, exists := a.Method(methodName); exists && !override {
		return errors.DuplicateMethodError(methodName)
	}
	return Bind(a, fn, methodName, opts...)
}

// Assert performs the assertion "assert fn(args...)" directly, without
// binding a method first. Trailing Options apply as usual.
func (a *Asserter) Assert(fn any, args ...any) error {
	positional, opts := splitArgs(args)
	return a.AssertCall(models.Describe(fn), "", positional, opts)
}

// Raises asserts that fn(args...) fails with an error matching target,
// by error return or panic
func (a *Asserter) Raises(target error, fn any, args ...any) error {
	positional, opts := splitArgs(args)
	opts.Exception = target
	return a.AssertCall(models.Describe(fn), "", positional, opts)
}

// AssertCall is the generic assertion operation every generated method
// forwards into: it invokes the described callable with args, applies
// post_process, evaluates truthiness, honors invert, and handles the
// expected-exception mode. It implements Caller.
func (a *Asserter) AssertCall(c *Callable, rendered string, args []any, opts CallOptions) error {
	if opts.Exception != nil {
		return a.assertRaises(c, args, opts)
	}

	output, err := invoke(c, args)
	if err != nil {
		return a.failure(c, args, opts, output, err)
	}
	if opts.PostProcess != nil {
		output = opts.PostProcess(output)
	}

	ok := truthy(output)
	if opts.Invert {
		ok = !ok
	}
	if !ok {
		return a.failure(c, args, opts, output, nil)
	}
	return nil
}

// assertRaises handles the expected-exception mode: the call must fail
// with an error matching opts.Exception
func (a *Asserter) assertRaises(c *Callable, args []any, opts CallOptions) error {
	if stderrors.Is(opts.Exception, ErrAssertionFailed) {
		return errors.New(errors.InvocationErrorCode,
			"ErrAssertionFailed is a disallowed value for the exception parameter")
	}

	_, err := invoke(c, args)
	if err == nil {
		failed := a.failure(c, args, opts, nil, nil)
		if ae, ok := failed.(*Error); ok {
			ae.Message = "failed to raise " + a.repr.Render(opts.Exception)
			ae.rebuild(a.repr, c)
		}
		return failed
	}
	if stderrors.Is(err, opts.Exception) {
		return nil
	}
	// An unexpected error surfaced instead of the expected one.
	return a.failure(c, args, opts, nil, err)
}

// failure builds the structured assertion error for a failed call
func (a *Asserter) failure(c *Callable, args []any, opts CallOptions, output any, cause error) error {
	e := &Error{
		Name:    c.DisplayName(),
		Args:    args,
		Output:  output,
		Invert:  opts.Invert,
		Message: opts.Message,
		Cause:   cause,
	}
	e.rebuild(a.repr, c)
	return e
}
