package attest

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = stderrors.New("boom")

func newTestAsserter(t *testing.T) *Asserter {
	t.Helper()
	a := NewWithSet(NewMethodSet())
	require.NoError(t, Bind(a, isEven, "even"))
	return a
}

func TestCallUnknownMethod(t *testing.T) {
	a := NewWithSet(NewMethodSet())
	err := a.Call("nope", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no assertion method named "nope"`)
}

func TestCallSuccessAndFailure(t *testing.T) {
	a := newTestAsserter(t)

	require.NoError(t, a.Call("even", 4))

	err := a.Call("even", 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAssertionFailed)
	assert.Contains(t, err.Error(), "output = isEven(a); assert output")
	assert.Contains(t, err.Error(), "output: bool = false")
	assert.Contains(t, err.Error(), "a: int = 3")
}

func TestCallInvert(t *testing.T) {
	a := newTestAsserter(t)

	require.NoError(t, a.Call("even", 3, Invert()))

	err := a.Call("even", 4, Invert())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAssertionFailed)
	assert.Contains(t, err.Error(), "output = not isEven(a); assert output")
}

func TestCallMessage(t *testing.T) {
	a := newTestAsserter(t)

	err := a.Call("even", 3, Message("expected an even value, got %d", 3))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected an even value, got 3")
}

func TestCallPostProcess(t *testing.T) {
	a := NewWithSet(NewMethodSet())
	require.NoError(t, Bind(a, func(vals []int) []int { return vals }, "passthrough"))

	negate := PostProcess(func(v any) any { return len(v.([]int)) == 0 })

	require.NoError(t, a.Call("passthrough", []int{}, negate))
	require.Error(t, a.Call("passthrough", []int{1}, negate))
}

func TestCallPropagatesInvocationError(t *testing.T) {
	a := NewWithSet(NewMethodSet())
	require.NoError(t, Bind(a, func() (bool, error) { return false, errBoom }, "broken"))

	err := a.Call("broken")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAssertionFailed)
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "exception:")
}

func TestRaisesErrorReturn(t *testing.T) {
	a := New()
	wrapped := func() error { return fmt.Errorf("invoking: %w", errBoom) }

	require.NoError(t, a.Raises(errBoom, wrapped))
}

func TestRaisesPanic(t *testing.T) {
	a := New()
	panicky := func() { panic(errBoom) }

	require.NoError(t, a.Raises(errBoom, panicky))
}

func TestRaisesNothingRaised(t *testing.T) {
	a := New()
	calm := func() bool { return true }

	err := a.Raises(errBoom, calm)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAssertionFailed)
	assert.Contains(t, err.Error(), "failed to raise")
}

func TestRaisesWrongError(t *testing.T) {
	a := New()
	other := func() error { return stderrors.New("different") }

	err := a.Raises(errBoom, other)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAssertionFailed)
	assert.Contains(t, err.Error(), "exception:")
}

func TestRaisesDisallowedTarget(t *testing.T) {
	a := New()

	err := a.Raises(ErrAssertionFailed, func() bool { return true })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disallowed")
}

func TestExceptionOption(t *testing.T) {
	a := NewWithSet(NewMethodSet())
	require.NoError(t, Bind(a, func() error { return errBoom }, "explodes"))

	require.NoError(t, a.Call("explodes", Exception(errBoom)))
}

func TestAddToInstanceShadowing(t *testing.T) {
	set := NewMethodSet()
	require.NoError(t, set.Bind(isEven, "parity"))
	a := NewWithSet(set)
	b := NewWithSet(set)

	err := a.AddToInstance(isOdd, false, "parity")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already has a method")

	require.NoError(t, a.AddToInstance(isOdd, true, "parity"))
	require.NoError(t, a.Call("parity", 3))
	require.Error(t, a.Call("parity", 4))

	// The shared set is untouched; other instances keep the original.
	require.NoError(t, b.Call("parity", 4))
	require.Error(t, b.Call("parity", 3))
}

func TestAddToInstanceDerivesName(t *testing.T) {
	a := NewWithSet(NewMethodSet())

	require.NoError(t, a.AddToInstance(isOdd, false, ""))
	require.NoError(t, a.Call("isOdd", 3))

	err := a.AddToInstance(func(int) bool { return true }, false, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no derivable name")
}

func TestAsserterNames(t *testing.T) {
	set := NewMethodSet()
	require.NoError(t, set.Bind(isEven, "even"))
	a := NewWithSet(set)
	require.NoError(t, a.AddToInstance(isOdd, false, "odd"))

	assert.Equal(t, []string{"even", "odd"}, a.Names())

	m, ok := a.Method("odd")
	require.True(t, ok)
	assert.Equal(t, "odd", m.Name)
	_, ok = set.Method("odd")
	assert.False(t, ok)
}

func TestAssertDirect(t *testing.T) {
	a := New()

	require.NoError(t, a.Assert(isEven, 4))

	err := a.Assert(isEven, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAssertionFailed)
}

func TestDefaultsPaddedFromDeclaredSignature(t *testing.T) {
	a := NewWithSet(NewMethodSet())
	sums := func(a, b int) bool { return a+b == 12 }
	require.NoError(t, Bind(a, sums, "sums", WithSignature("(a, b=10)")))

	require.NoError(t, a.Call("sums", 2))
	require.NoError(t, a.Call("sums", 5, 7))
	require.Error(t, a.Call("sums", 3))
}

func TestMethodFunc(t *testing.T) {
	a := newTestAsserter(t)
	m, ok := a.Method("even")
	require.True(t, ok)

	even := m.Func(a)
	require.NoError(t, even(4))
	require.Error(t, even(3, Invert()))
}
