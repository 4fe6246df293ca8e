package attest

import "sort"

// MethodSet is a shared method table: the "class level" attachment
// target. Every Asserter created from a set sees all of its methods,
// including ones bound after the Asserter was created.
type MethodSet struct {
	methods map[string]*Method
}

// NewMethodSet creates an empty method set
func NewMethodSet() *MethodSet {
	return &MethodSet{
		methods: make(map[string]*Method),
	}
}

// Install adds a method to the set, overwriting any previous method of
// the same name
func (s *MethodSet) Install(name string, m *Method) {
	s.methods[name] = m
}

// Method retrieves a method by name
func (s *MethodSet) Method(name string) (*Method, bool) {
	m, ok := s.methods[name]
	return m, ok
}

// Methods returns all methods in the set, sorted by name
func (s *MethodSet) Methods() []*Method {
	out := make([]*Method, 0, len(s.methods))
	for _, m := range s.methods {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the sorted names of all methods in the set
func (s *MethodSet) Names() []string {
	out := make([]string, 0, len(s.methods))
	for name := range s.methods {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Bind synthesizes an assertion method from fn and installs it on the
// set under name (or fn's own name when empty)
func (s *MethodSet) Bind(fn any, name string, opts ...DescribeOption) error {
	return Bind(s, fn, name, opts...)
}

// DefaultMethodSet is the global method set, pre-populated with the
// builtin predicate catalog
var DefaultMethodSet = NewMethodSet()
