package attest

import (
	"fmt"

	"github.com/toyz/attest/internal/docs"
	"github.com/toyz/attest/internal/errors"
	"github.com/toyz/attest/internal/models"
	"github.com/toyz/attest/internal/signature"
	"github.com/toyz/attest/internal/utils"
)

// Target is anything a generated method can be installed on. MethodSet
// installs for every sharing Asserter; Asserter installs for itself
// only, shadowing its set.
type Target interface {
	Install(name string, m *Method)
}

// DocConfig carries the explicit configuration of the documentation
// synthesizer: the module-name mapping, the summary verbosity, and the
// base template.
type DocConfig = docs.Config

// Warner receives the non-fatal diagnostics emitted while binding,
// such as reserved-parameter renames.
type Warner = signature.Warner

// Binder drives the synthesis pipeline (derive, render, synthesize,
// document, attach) with explicit configuration. The zero value uses
// the default documentation configuration and a warning-level
// diagnostic channel.
type Binder struct {
	// Docs configures the documentation synthesizer
	Docs DocConfig

	// Warner receives non-fatal diagnostics; defaults to colored
	// warning output on stdout
	Warner Warner
}

var defaultBinder = &Binder{
	Docs:   docs.DefaultConfig(),
	Warner: utils.NewDiagnosticSystem(utils.DiagnosticWarn),
}

// Bind synthesizes an assertion method from fn and installs it on
// target under name, or under fn's own name when name is empty.
//
// fn may be a plain func value, a *Callable descriptor, or a
// reflect.Type. It fails when no name is derivable and none is given,
// or when fn cannot be classified for documentation purposes.
// Re-binding an existing name overwrites the previous method.
func (b *Binder) Bind(target Target, fn any, name string, opts ...DescribeOption) error {
	c := models.Describe(fn, opts...)

	if c.Name == "" {
		if name == "" {
			return errors.MissingNameError(describeValue(fn))
		}
		c.Name = name
	}
	if name == "" {
		name = c.Name
	}

	m, err := b.newMethod(c)
	if err != nil {
		return err
	}
	m.Name = name
	target.Install(name, m)
	return nil
}

// newMethod runs the pipeline for one callable: signature derivation,
// rendering, closure synthesis, and documentation
func (b *Binder) newMethod(c *Callable) (*Method, error) {
	sig := signature.Derive(c, b.Warner)
	rendered := signature.Render(sig, c.DisplayName())

	doc, err := docs.Build(b.Docs, c, signature.RenderDoc(sig))
	if err != nil {
		return nil, err
	}

	annotations := c.CopyAnnotations()
	annotations["return"] = ""
	annotations[models.ParamInvert] = "bool"
	annotations[models.ParamException] = "error"

	return &Method{
		Doc:         doc,
		Signature:   sig,
		Rendered:    rendered,
		KwDefaults:  sig.KeywordDefaults(),
		Annotations: annotations,
		callable:    c,
	}, nil
}

// Bind synthesizes an assertion method from fn with the default
// configuration and installs it on target. See Binder.Bind.
func Bind(target Target, fn any, name string, opts ...DescribeOption) error {
	return defaultBinder.Bind(target, fn, name, opts...)
}

// MustBind is like Bind but panics on failure. It is intended for
// setup-time registration and generated code.
func MustBind(target Target, fn any, name string, opts ...DescribeOption) {
	if err := Bind(target, fn, name, opts...); err != nil {
		panic(err)
	}
}

// DeriveSignature returns the augmented signature for fn. It never
// fails: callables whose native signature cannot be read yield the
// fixed fallback signature.
func DeriveSignature(fn any, opts ...DescribeOption) *Signature {
	return signature.Derive(models.Describe(fn, opts...), defaultBinder.Warner)
}

// RenderCall converts an augmented signature into the literal textual
// parameter list of a call expression, substituting displayName for
// the self-like parameter.
func RenderCall(sig *Signature, displayName string) string {
	return signature.Render(sig, displayName)
}

// BuildDocumentation composes the documentation text for an assertion
// method synthesized from fn, embedding the rendered signature. It
// fails when fn cannot be classified as a function, method, or type.
func BuildDocumentation(fn any, rendered string, opts ...DescribeOption) (string, error) {
	return docs.Build(defaultBinder.Docs, models.Describe(fn, opts...), rendered)
}

// WithName overrides the callable's discovered name, which is used in
// the rendered expression and documentation
func WithName(name string) DescribeOption {
	return models.WithName(name)
}

// WithDoc attaches documentation text to the callable being bound
func WithDoc(doc string) DescribeOption {
	return models.WithDoc(doc)
}

// WithModule overrides the module name embedded in the generated
// cross-reference
func WithModule(module string) DescribeOption {
	return models.WithModule(module)
}

// WithReceiver marks the callable as a method of the named receiver
// type, which also names the self-like parameter of the derived
// signature
func WithReceiver(receiver string) DescribeOption {
	return models.WithReceiver(receiver)
}

// WithSignature declares the callable's native parameter list from a
// textual declaration such as "(a, b, rtol=1e-07)". It panics on
// malformed declarations; declarations are expected to be static.
func WithSignature(decl string) DescribeOption {
	return models.WithParams(signature.MustParse(decl))
}

// describeValue names an arbitrary value for error messages
func describeValue(fn any) string {
	return fmt.Sprintf("%T", fn)
}
