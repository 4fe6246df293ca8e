package models

// Callable describes a source callable: the callable value itself plus
// the introspected (or declared) metadata the synthesis pipeline needs.
// A Callable is read once from its source and never mutated afterwards.
type Callable struct {
	// Func is the underlying callable value; a func value for anything
	// that can actually be invoked
	Func any

	// Name is the bare name of the callable (e.g. "len_eq")
	Name string

	// QualName is the receiver-qualified name for methods
	// (e.g. "Repr.Render"); empty when it matches Name
	QualName string

	// Module is the package path owning the callable, or a pseudo-module
	// such as "builtin" for catalog entries
	Module string

	// Doc is the callable's documentation text, empty when absent
	Doc string

	// Kind classifies the callable for documentation cross-referencing
	Kind CallableKind

	// Receiver is the receiver type name for methods, empty otherwise
	Receiver string

	// Params is the native parameter list; only meaningful when
	// SignatureOK is true
	Params []Parameter

	// Return is the display text of the native return annotation
	Return string

	// SignatureOK reports whether the native signature could be read
	SignatureOK bool

	// Annotations maps parameter names (plus "return") to type display
	// text; nil when the source exposes no type information
	Annotations map[string]string
}

// DisplayName returns the qualified name when available, falling back
// to the bare name
func (c *Callable) DisplayName() string {
	if c.QualName != "" {
		return c.QualName
	}
	return c.Name
}

// CopyAnnotations returns a copy of the callable's annotation map,
// or an empty map when the callable carries none
func (c *Callable) CopyAnnotations() map[string]string {
	out := make(map[string]string, len(c.Annotations))
	for k, v := range c.Annotations {
		out[k] = v
	}
	return out
}
