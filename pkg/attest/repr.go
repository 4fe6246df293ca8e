package attest

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/davecgh/go-spew/spew"
)

// Repr renders values for failure messages: single line, stable map
// ordering, truncated past MaxString runes.
type Repr struct {
	MaxString int

	state *spew.ConfigState
}

func NewRepr() *Repr {
	return &Repr{
		MaxString: 80,
		state: &spew.ConfigState{
			Indent:                  " ",
			SortKeys:                true,
			DisablePointerAddresses: true,
			DisableCapacities:       true,
		},
	}
}

// Render returns a single-line representation of v
func (r *Repr) Render(v any) string {
	var s string
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		s = strconv.Quote(x)
	case error:
		s = strconv.Quote(x.Error())
	case fmt.Stringer:
		s = x.String()
	default:
		if isScalar(v) {
			s = fmt.Sprintf("%v", v)
		} else {
			s = strings.Join(strings.Fields(r.state.Sprintf("%#v", v)), " ")
		}
	}
	return r.truncate(s)
}

// TypeName returns the display type for "name: type = value" lines
func (r *Repr) TypeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}

func (r *Repr) truncate(s string) string {
	if r.MaxString <= 3 || utf8.RuneCountInString(s) <= r.MaxString {
		return s
	}
	// Cut on rune boundaries so multi-byte characters survive intact.
	runes := []rune(s)
	return string(runes[:r.MaxString-3]) + "..."
}

func isScalar(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}
