package attest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isEven(n int) bool { return n%2 == 0 }

func isOdd(n int) bool { return n%2 != 0 }

type recordWarner struct {
	messages []string
}

func (w *recordWarner) Warn(format string, args ...interface{}) {
	w.messages = append(w.messages, fmt.Sprintf(format, args...))
}

func TestBindUsesFunctionName(t *testing.T) {
	set := NewMethodSet()
	require.NoError(t, Bind(set, isEven, ""))

	m, ok := set.Method("isEven")
	require.True(t, ok)
	assert.Equal(t, "isEven", m.Name)
	assert.True(t, strings.HasPrefix(m.Doc, "Perform the following assertion: assert isEven(a)"))
}

func TestBindExplicitName(t *testing.T) {
	set := NewMethodSet()
	require.NoError(t, Bind(set, isEven, "even"))

	_, ok := set.Method("isEven")
	assert.False(t, ok)
	m, ok := set.Method("even")
	require.True(t, ok)

	// The documentation still names the source callable.
	assert.Contains(t, m.Doc, "assert isEven(a)")
}

func TestBindAnonymousRequiresName(t *testing.T) {
	set := NewMethodSet()
	fn := func(n int) bool { return n > 0 }

	err := Bind(set, fn, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no derivable name")

	require.NoError(t, Bind(set, fn, "positive"))
	m, ok := set.Method("positive")
	require.True(t, ok)
	assert.Contains(t, m.Doc, "assert positive(a)")
}

func TestBindOverwrites(t *testing.T) {
	set := NewMethodSet()
	a := NewWithSet(set)

	require.NoError(t, Bind(set, isEven, "check"))
	require.NoError(t, a.Call("check", 4))

	require.NoError(t, Bind(set, isOdd, "check"))
	require.NoError(t, a.Call("check", 3))
	require.Error(t, a.Call("check", 4))
}

func TestBindMethodMetadata(t *testing.T) {
	set := NewMethodSet()
	require.NoError(t, Bind(set, isEven, "", WithDoc("Check if n is even.")))

	m, _ := set.Method("isEven")
	assert.Equal(t, "bool", m.Annotations["invert"])
	assert.Equal(t, "error", m.Annotations["exception"])
	assert.Equal(t, "", m.Annotations["return"])

	assert.Contains(t, m.KwDefaults, "invert")
	assert.Equal(t, false, m.KwDefaults["invert"])
	assert.Contains(t, m.Doc, "Check if n is even.")

	require.NotNil(t, m.Callable())
	assert.Equal(t, "isEven", m.Callable().Name)
}

func TestBindReservedCollisionWarns(t *testing.T) {
	recorder := &recordWarner{}
	binder := &Binder{Warner: recorder}
	set := NewMethodSet()

	require.NoError(t, binder.Bind(set, isEven, "flip", WithSignature("(invert)")))

	m, _ := set.Method("flip")
	require.Len(t, recorder.messages, 1)
	assert.Contains(t, recorder.messages[0], `"invert"`)
	assert.True(t, m.Signature.Has("invert_"))
}

func TestDeriveSignatureFallback(t *testing.T) {
	sig := DeriveSignature(42)
	require.Len(t, sig.Parameters, 7)
	assert.Equal(t, "self", sig.SelfName())
}

func TestRenderCall(t *testing.T) {
	sig := DeriveSignature(isEven)
	assert.Equal(t,
		"(isEven, a, *args, invert=invert, exception=exception, post_process=post_process, message=message, **kwargs)",
		RenderCall(sig, "isEven"))
}

func TestBuildDocumentationUnclassifiable(t *testing.T) {
	_, err := BuildDocumentation(42, "()", WithName("mystery"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neither a function, method nor type")
}

func TestWithSignaturePanicsOnMalformedDeclaration(t *testing.T) {
	assert.Panics(t, func() { WithSignature("(a") })
}

func TestMethodSetNames(t *testing.T) {
	set := NewMethodSet()
	require.NoError(t, set.Bind(isEven, "even"))
	require.NoError(t, set.Bind(isOdd, "odd"))

	assert.Equal(t, []string{"even", "odd"}, set.Names())
	methods := set.Methods()
	require.Len(t, methods, 2)
	assert.Equal(t, "even", methods[0].Name)
}
