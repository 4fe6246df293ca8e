package attest

import (
	"fmt"
	"reflect"

	"github.com/toyz/attest/internal/errors"
	"github.com/toyz/attest/internal/models"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// panicError wraps a value recovered from a panicking callable so that
// expected-error matching can still unwrap the original error value.
type panicError struct {
	value any
}

func (p *panicError) Error() string {
	return fmt.Sprintf("panic: %v", p.value)
}

func (p *panicError) Unwrap() error {
	if err, ok := p.value.(error); ok {
		return err
	}
	return nil
}

// invoke calls the described function value with args via reflection.
// Missing trailing arguments are padded from the callable's declared
// defaults, a trailing error result is split off, and panics are
// captured as errors rather than propagated.
func invoke(c *models.Callable, args []any) (output any, err error) {
	if c == nil || c.Func == nil {
		return nil, errors.New(errors.InvocationErrorCode, "callable has no invocable function value")
	}
	fn := reflect.ValueOf(c.Func)
	if fn.Kind() != reflect.Func {
		return nil, errors.Newf(errors.InvocationErrorCode, "%s is not invocable", describeValue(c.Func))
	}
	t := fn.Type()

	fixed := t.NumIn()
	if t.IsVariadic() {
		fixed--
	}

	full := append([]any(nil), args...)
	for i := len(full); i < fixed; i++ {
		def, ok := defaultFor(c, i)
		if !ok {
			return nil, errors.Newf(errors.InvocationErrorCode,
				"%s: missing argument %d of %d", c.DisplayName(), i+1, fixed)
		}
		full = append(full, def)
	}
	if !t.IsVariadic() && len(full) > fixed {
		return nil, errors.Newf(errors.InvocationErrorCode,
			"%s: too many arguments (%d > %d)", c.DisplayName(), len(full), fixed)
	}

	in := make([]reflect.Value, len(full))
	for i, arg := range full {
		var want reflect.Type
		if i < fixed {
			want = t.In(i)
		} else {
			want = t.In(t.NumIn() - 1).Elem()
		}
		v, convErr := coerce(arg, want)
		if convErr != nil {
			return nil, errors.WrapInvocationError(c.DisplayName(),
				fmt.Errorf("argument %d: %w", i+1, convErr))
		}
		in[i] = v
	}

	defer func() {
		if r := recover(); r != nil {
			output, err = nil, &panicError{value: r}
		}
	}()

	out := fn.Call(in)
	if n := len(out); n > 0 && t.Out(n-1) == errType {
		if e, _ := out[n-1].Interface().(error); e != nil {
			err = e
		}
		out = out[:n-1]
	}
	switch len(out) {
	case 0:
		output = nil
	case 1:
		output = out[0].Interface()
	default:
		multi := make([]any, len(out))
		for i, v := range out {
			multi[i] = v.Interface()
		}
		output = multi
	}
	return output, err
}

// defaultFor looks up the declared default for positional slot i
func defaultFor(c *models.Callable, i int) (any, bool) {
	if i < len(c.Params) && c.Params[i].HasDefault {
		return c.Params[i].Default, true
	}
	return nil, false
}

// coerce adapts an argument to the parameter type, allowing the usual
// Go conversions (untyped-literal style int to float64, named types)
func coerce(arg any, want reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch want.Kind() {
		case reflect.Interface, reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
			return reflect.Zero(want), nil
		default:
			return reflect.Value{}, fmt.Errorf("cannot use nil as %s", want)
		}
	}
	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(want) {
		return v, nil
	}
	if v.Type().ConvertibleTo(want) && convertible(v.Type(), want) {
		return v.Convert(want), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", arg, want)
}

// convertible restricts reflect's ConvertibleTo to conversions that
// preserve meaning for assertion arguments: named types of the same
// kind and widening numeric conversions. Narrowing and sign-changing
// conversions are rejected, otherwise a truncated or wrapped argument
// could satisfy an assertion the original value would not.
func convertible(from, to reflect.Type) bool {
	if from.Kind() == to.Kind() {
		return true
	}
	fc, tc := numericClass(from), numericClass(to)
	switch {
	case fc == numNone || tc == numNone:
		return false
	case fc == tc:
		return from.Bits() <= to.Bits()
	case tc == numFloat:
		// Integers widen into float64 only; float32 cannot hold them.
		return to.Bits() == 64
	case fc == numUnsigned && tc == numSigned:
		return from.Bits() < to.Bits()
	default:
		return false
	}
}

type numClass int

const (
	numNone numClass = iota
	numSigned
	numUnsigned
	numFloat
)

func numericClass(t reflect.Type) numClass {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return numSigned
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return numUnsigned
	case reflect.Float32, reflect.Float64:
		return numFloat
	}
	return numNone
}

// truthy evaluates assertion truth the way a dynamic assert would:
// nil, false, zero numbers and empty containers are false, everything
// else is true.
func truthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Complex64, reflect.Complex128:
		return rv.Complex() != 0
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len() != 0
	case reflect.Ptr, reflect.Interface, reflect.Func, reflect.UnsafePointer:
		return !rv.IsNil()
	}
	return true
}
