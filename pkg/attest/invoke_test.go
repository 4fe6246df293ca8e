package attest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/attest/internal/models"
)

func TestTruthy(t *testing.T) {
	truthyValues := []any{true, 1, -1, 3.5, "x", []int{0}, map[string]int{"a": 1}, new(int), struct{}{}, isEven}
	falsyValues := []any{nil, false, 0, 0.0, "", []int{}, map[string]int{}, (*int)(nil), (func())(nil)}

	for _, v := range truthyValues {
		assert.True(t, truthy(v), "expected %#v to be truthy", v)
	}
	for _, v := range falsyValues {
		assert.False(t, truthy(v), "expected %#v to be falsy", v)
	}
}

func TestInvokeVariadic(t *testing.T) {
	count := func(vals ...int) int { return len(vals) }

	output, err := invoke(models.Describe(count), []any{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 3, output)

	output, err = invoke(models.Describe(count), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, output)
}

func TestInvokeArityErrors(t *testing.T) {
	one := func(a int) bool { return a > 0 }

	_, err := invoke(models.Describe(one), []any{1, 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many arguments")

	_, err = invoke(models.Describe(one), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing argument")
}

func TestInvokeNumericConversion(t *testing.T) {
	half := func(x float64) float64 { return x / 2 }

	output, err := invoke(models.Describe(half), []any{5})
	require.NoError(t, err)
	assert.Equal(t, 2.5, output)
}

func TestInvokeConversionRejected(t *testing.T) {
	upper := func(s string) string { return s }

	// A rune-to-string conversion would silently change meaning.
	_, err := invoke(models.Describe(upper), []any{65})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot use")
}

func TestInvokeRejectsLossyNumericConversion(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }
	positive := func(n uint64) bool { return n > 0 }
	narrow := func(n int8) bool { return n > 0 }

	// Truncating 2.5 to 2 would make the assertion pass on a value the
	// caller never supplied.
	_, err := invoke(models.Describe(even), []any{2.5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot use")

	// -1 must not wrap around into a large unsigned value.
	_, err = invoke(models.Describe(positive), []any{-1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot use")

	_, err = invoke(models.Describe(narrow), []any{1000})
	require.Error(t, err)

	// Widening stays permitted.
	output, err := invoke(models.Describe(positive), []any{uint8(3)})
	require.NoError(t, err)
	assert.Equal(t, true, output)
}

func TestInvokeNilArgument(t *testing.T) {
	isNilPtr := func(p *int) bool { return p == nil }

	output, err := invoke(models.Describe(isNilPtr), []any{nil})
	require.NoError(t, err)
	assert.Equal(t, true, output)

	_, err = invoke(models.Describe(func(n int) bool { return true }), []any{nil})
	require.Error(t, err)
}

func TestInvokeCapturesPanic(t *testing.T) {
	_, err := invoke(models.Describe(func() { panic("kaboom") }), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic: kaboom")
}

func TestInvokeSplitsTrailingError(t *testing.T) {
	ok := func() (int, error) { return 7, nil }
	output, err := invoke(models.Describe(ok), nil)
	require.NoError(t, err)
	assert.Equal(t, 7, output)

	bad := func() (int, error) { return 0, errBoom }
	_, err = invoke(models.Describe(bad), nil)
	assert.ErrorIs(t, err, errBoom)
}

func TestInvokeMultipleResults(t *testing.T) {
	pair := func() (int, string) { return 1, "x" }

	output, err := invoke(models.Describe(pair), nil)
	require.NoError(t, err)
	assert.Equal(t, []any{1, "x"}, output)
}

func TestInvokeNonCallable(t *testing.T) {
	_, err := invoke(models.Describe(42), nil)
	require.Error(t, err)

	_, err = invoke(nil, nil)
	require.Error(t, err)
}
