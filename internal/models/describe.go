package models

import (
	"reflect"
	"runtime"
	"strings"
)

// paramLetters supplies synthesized parameter names when the source
// exposes none
const paramLetters = "abcdefghijklmnopqrstuvwxyz"

// DescribeOption customizes the metadata attached to a described callable
type DescribeOption func(*Callable)

// WithName overrides the callable's bare name
func WithName(name string) DescribeOption {
	return func(c *Callable) {
		c.Name = name
		if c.Receiver != "" {
			c.QualName = c.Receiver + "." + name
		} else {
			c.QualName = ""
		}
	}
}

// WithDoc attaches documentation text to the callable
func WithDoc(doc string) DescribeOption {
	return func(c *Callable) { c.Doc = doc }
}

// WithModule overrides the module owning the callable
func WithModule(module string) DescribeOption {
	return func(c *Callable) { c.Module = module }
}

// WithReceiver marks the callable as a method of the named receiver type
func WithReceiver(receiver string) DescribeOption {
	return func(c *Callable) {
		c.Receiver = receiver
		c.Kind = KindMethod
		if c.Name != "" {
			c.QualName = receiver + "." + c.Name
		}
	}
}

// WithKind forces the documentation classification of the callable
func WithKind(kind CallableKind) DescribeOption {
	return func(c *Callable) { c.Kind = kind }
}

// WithParams replaces the callable's native parameter list, typically
// with one parsed from a textual signature declaration
func WithParams(params []Parameter) DescribeOption {
	return func(c *Callable) {
		c.Params = params
		c.SignatureOK = true
	}
}

// Describe reads the runtime metadata of fn and returns a Callable
// descriptor for it. fn may be a func value, a reflect.Type (classified
// as a type), or an existing *Callable (returned with the options
// applied to a copy). Describe never fails: callables whose signature
// cannot be read yield a descriptor with SignatureOK set to false.
func Describe(fn any, opts ...DescribeOption) *Callable {
	if existing, ok := fn.(*Callable); ok {
		clone := *existing
		clone.Params = append([]Parameter(nil), existing.Params...)
		applyOptions(&clone, opts)
		rebuildAnnotations(&clone)
		return &clone
	}

	c := &Callable{Func: fn}
	var argTypes []string

	v := reflect.ValueOf(fn)
	switch {
	case !v.IsValid():
		// nil callable: signature unreadable, nothing to introspect

	case v.Kind() == reflect.Func:
		argTypes = describeFunc(c, v)

	default:
		if t, ok := fn.(reflect.Type); ok {
			c.Kind = KindType
			c.Name = t.Name()
			c.Module = t.PkgPath()
		}
		// Any other value has no readable signature and stays unclassified.
	}

	applyOptions(c, opts)

	// Declared parameter lists carry no type information of their own;
	// recover it positionally from the reflected func type when the
	// arities line up.
	if len(argTypes) == len(c.Params) {
		for i := range c.Params {
			if c.Params[i].Annotation == "" {
				c.Params[i].Annotation = argTypes[i]
			}
		}
	}

	rebuildAnnotations(c)
	return c
}

func applyOptions(c *Callable, opts []DescribeOption) {
	for _, opt := range opts {
		opt(c)
	}
}

// describeFunc fills in the metadata readable from a func value and
// returns the display text of its argument types in declaration order
func describeFunc(c *Callable, v reflect.Value) []string {
	c.SignatureOK = true
	c.Kind = KindFunction

	if rf := runtime.FuncForPC(v.Pointer()); rf != nil {
		module, qual := splitFuncName(rf.Name())
		c.Module = module
		qual = strings.TrimSuffix(qual, "-fm")
		qual = strings.NewReplacer("(", "", ")", "", "*", "").Replace(qual)
		if !anonymousFuncName(qual) {
			parts := strings.Split(qual, ".")
			c.Name = parts[len(parts)-1]
			if len(parts) > 1 {
				c.Receiver = parts[len(parts)-2]
				c.QualName = c.Receiver + "." + c.Name
				c.Kind = KindMethod
			}
		}
	}

	t := v.Type()
	argTypes := make([]string, 0, t.NumIn())
	for i := 0; i < t.NumIn(); i++ {
		name := synthesizedName(i)
		kind := ParamPositionalOrKeyword
		typ := t.In(i).String()
		if t.IsVariadic() && i == t.NumIn()-1 {
			name = "args"
			kind = ParamVarPositional
			typ = t.In(i).Elem().String()
		}
		c.Params = append(c.Params, Parameter{Name: name, Kind: kind, Annotation: typ})
		argTypes = append(argTypes, typ)
	}
	c.Return = describeResults(t)
	return argTypes
}

// synthesizedName returns a placeholder parameter name for position i
func synthesizedName(i int) string {
	if i < len(paramLetters) {
		return string(paramLetters[i])
	}
	return "arg" + string(rune('0'+i%10))
}

// describeResults renders a func type's results, treating a trailing
// error as part of the calling convention rather than a produced value
func describeResults(t reflect.Type) string {
	var out []string
	for i := 0; i < t.NumOut(); i++ {
		if i == t.NumOut()-1 && t.Out(i) == errorType {
			continue
		}
		out = append(out, t.Out(i).String())
	}
	switch len(out) {
	case 0:
		return ""
	case 1:
		return out[0]
	default:
		return "(" + strings.Join(out, ", ") + ")"
	}
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// splitFuncName splits a runtime function name such as
// "github.com/toyz/attest/pkg/attest.(*Repr).Render-fm" into the owning
// package path and the qualified name within it
func splitFuncName(full string) (module, qual string) {
	tail := full
	prefix := ""
	if slash := strings.LastIndex(full, "/"); slash >= 0 {
		prefix = full[:slash+1]
		tail = full[slash+1:]
	}
	dot := strings.Index(tail, ".")
	if dot < 0 {
		return "", tail
	}
	return prefix + tail[:dot], tail[dot+1:]
}

// anonymousFuncName reports whether a qualified runtime name denotes a
// function literal (e.g. "glob..func1", "Outer.func2.1"), which has no
// usable display name
func anonymousFuncName(qual string) bool {
	for _, part := range strings.Split(qual, ".") {
		if !strings.HasPrefix(part, "func") {
			continue
		}
		digits := part[len("func"):]
		if digits == "" {
			continue
		}
		numeric := true
		for _, r := range digits {
			if r < '0' || r > '9' {
				numeric = false
				break
			}
		}
		if numeric {
			return true
		}
	}
	return false
}

// rebuildAnnotations regenerates the annotation map from the current
// parameter list and return annotation
func rebuildAnnotations(c *Callable) {
	if !c.SignatureOK {
		return
	}
	annotations := make(map[string]string)
	for _, prm := range c.Params {
		if prm.Annotation != "" {
			annotations[prm.Name] = prm.Annotation
		}
	}
	annotations["return"] = c.Return
	c.Annotations = annotations
}
