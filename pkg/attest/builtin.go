package attest

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// Assertion is the package-level Asserter shared by code that does not
// need an isolated method table.
var Assertion = New()

// builtinEntry describes one catalog method registered at init time
type builtinEntry struct {
	name string
	fn   any
	sig  string
	doc  string
}

var builtinCatalog = []builtinEntry{
	{"eq", builtinEq, "(a, b)", "Check if a and b are deeply equal."},
	{"ne", builtinNe, "(a, b)", "Check if a and b are not deeply equal."},
	{"lt", builtinLt, "(a, b)", "Check if a is ordered before b."},
	{"le", builtinLe, "(a, b)", "Check if a is ordered before or equal to b."},
	{"gt", builtinGt, "(a, b)", "Check if a is ordered after b."},
	{"ge", builtinGe, "(a, b)", "Check if a is ordered after or equal to b."},
	{"contains", builtinContains, "(a, b)", "Check if a contains b."},
	{"truth", builtinTruth, "(obj)", "Check if obj is truthy."},
	{"not_", builtinNot, "(obj)", "Check if obj is falsy."},
	{"is_nil", builtinIsNil, "(obj)", "Check if obj is nil."},
	{"callable", builtinCallable, "(obj)", "Check if obj is callable."},
	{"len", builtinLen, "(obj)", "Return the number of items in obj."},
	{"len_eq", builtinLenEq, "(a, b)", "Check if the length of a is equivalent to b."},
	{"allclose", builtinAllclose, "(a, b, rtol=1e-07)", "Check if the absolute difference between a and b is smaller than rtol."},
	{"str_eq", builtinStrEq, "(a, b, use_repr=true)", "Check if the string representation of a is equivalent to b."},
	{"isfile", builtinIsFile, "(path)", "Check if path is an existing regular file."},
	{"isdir", builtinIsDir, "(path)", "Check if path is an existing directory."},
	{"islink", builtinIsLink, "(path)", "Check if path is a symbolic link."},
	{"isabs", builtinIsAbs, "(path)", "Check if path is an absolute pathname."},
}

func init() {
	for _, b := range builtinCatalog {
		MustBind(DefaultMethodSet, b.fn, b.name,
			WithName(b.name),
			WithModule("builtin"),
			WithSignature(b.sig),
			WithDoc(b.doc),
		)
	}
}

// cmpOptions lets go-cmp compare unexported fields, matching the
// anything-goes equality the catalog promises
var cmpOptions = cmp.Options{
	cmp.Exporter(func(reflect.Type) bool { return true }),
}

func deepEqual(a, b any) bool {
	return cmp.Equal(a, b, cmpOptions...)
}

func builtinEq(a, b any) bool { return deepEqual(a, b) }
func builtinNe(a, b any) bool { return !deepEqual(a, b) }

// compareValues orders two values: numerically when both are numeric,
// lexically when both are strings
func compareValues(a, b any) (int, error) {
	fa, oka := toFloat(a)
	fb, okb := toFloat(b)
	if oka && okb {
		switch {
		case fa < fb:
			return -1, nil
		case fa > fb:
			return 1, nil
		}
		return 0, nil
	}
	sa, oka := a.(string)
	sb, okb := b.(string)
	if oka && okb {
		return strings.Compare(sa, sb), nil
	}
	return 0, fmt.Errorf("cannot order %T and %T", a, b)
}

func builtinLt(a, b any) (bool, error) {
	c, err := compareValues(a, b)
	return c < 0, err
}

func builtinLe(a, b any) (bool, error) {
	c, err := compareValues(a, b)
	return c <= 0, err
}

func builtinGt(a, b any) (bool, error) {
	c, err := compareValues(a, b)
	return c > 0, err
}

func builtinGe(a, b any) (bool, error) {
	c, err := compareValues(a, b)
	return c >= 0, err
}

// builtinContains reports membership: substring for strings, element
// for slices and arrays, key for maps
func builtinContains(a, b any) (bool, error) {
	if s, ok := a.(string); ok {
		sub, ok := b.(string)
		if !ok {
			return false, fmt.Errorf("cannot search a string for %T", b)
		}
		return strings.Contains(s, sub), nil
	}
	rv := reflect.ValueOf(a)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if deepEqual(rv.Index(i).Interface(), b) {
				return true, nil
			}
		}
		return false, nil
	case reflect.Map:
		iter := rv.MapRange()
		for iter.Next() {
			if deepEqual(iter.Key().Interface(), b) {
				return true, nil
			}
		}
		return false, nil
	}
	return false, fmt.Errorf("%T is not a container", a)
}

func builtinTruth(obj any) bool { return truthy(obj) }
func builtinNot(obj any) bool   { return !truthy(obj) }

func builtinIsNil(obj any) bool {
	if obj == nil {
		return true
	}
	rv := reflect.ValueOf(obj)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

func builtinCallable(obj any) bool {
	return obj != nil && reflect.ValueOf(obj).Kind() == reflect.Func
}

func builtinLen(obj any) (int, error) {
	rv := reflect.ValueOf(obj)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len(), nil
	}
	return 0, fmt.Errorf("%T has no length", obj)
}

func builtinLenEq(a any, b int) (bool, error) {
	n, err := builtinLen(a)
	if err != nil {
		return false, err
	}
	return n == b, nil
}

func builtinAllclose(a, b any, rtol float64) (bool, error) {
	fa, ok := toFloat(a)
	if !ok {
		return false, fmt.Errorf("%T is not numeric", a)
	}
	fb, ok := toFloat(b)
	if !ok {
		return false, fmt.Errorf("%T is not numeric", b)
	}
	return math.Abs(fa-fb) < rtol, nil
}

func builtinStrEq(a any, b string, useRepr bool) bool {
	if useRepr {
		return fmt.Sprintf("%#v", a) == b
	}
	return fmt.Sprintf("%v", a) == b
}

func builtinIsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func builtinIsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func builtinIsLink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

func builtinIsAbs(path string) bool {
	return filepath.IsAbs(path)
}

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
