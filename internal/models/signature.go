package models

// Parameter is a single slot in a callable's parameter list
type Parameter struct {
	// Name is the parameter name as it appears in rendered signatures
	Name string

	// Kind describes how arguments bind to this parameter
	Kind ParamKind

	// Default holds the default value when HasDefault is true
	Default any

	// HasDefault reports whether the parameter carries a default value
	HasDefault bool

	// Annotation is the display text of the parameter's type, empty
	// when no annotation is available
	Annotation string

	// Reserved marks the control parameters appended by the signature
	// deriver (invert, exception, post_process, message)
	Reserved bool
}

// Signature is an ordered parameter list with a return annotation
type Signature struct {
	// Parameters holds the ordered parameter list
	Parameters []Parameter

	// Return is the display text of the return annotation, empty for
	// "no return value"
	Return string
}

// Has reports whether a parameter with the given name exists
func (s *Signature) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// Lookup returns the parameter with the given name
func (s *Signature) Lookup(name string) (Parameter, bool) {
	for _, prm := range s.Parameters {
		if prm.Name == name {
			return prm, true
		}
	}
	return Parameter{}, false
}

// KeywordDefaults returns the default values of all keyword-only
// parameters, keyed by parameter name
func (s *Signature) KeywordDefaults() map[string]any {
	defaults := make(map[string]any)
	for _, prm := range s.Parameters {
		if prm.Kind == ParamKeywordOnly && prm.HasDefault {
			defaults[prm.Name] = prm.Default
		}
	}
	return defaults
}

// SelfName returns the name of the leading self-like parameter, or
// empty when the signature has no parameters
func (s *Signature) SelfName() string {
	if len(s.Parameters) == 0 {
		return ""
	}
	return s.Parameters[0].Name
}
