package launch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weft-ml/weft/internal/tensor"
)

func TestSignatureOf_Binary(t *testing.T) {
	sig, err := SignatureOf(func(a, b float32) float32 { return a + b })
	require.NoError(t, err)

	assert.Equal(t, 2, sig.Arity)
	assert.Equal(t, tensor.Float32, sig.Arg(0))
	assert.Equal(t, tensor.Float32, sig.Arg(1))
	assert.Equal(t, tensor.Float32, sig.Ret)
	assert.True(t, sig.Uniform())
}

func TestSignatureOf_Predicate(t *testing.T) {
	// Arguments and result may have different types.
	sig, err := SignatureOf(func(v float64) bool { return v > 0 })
	require.NoError(t, err)

	assert.Equal(t, 1, sig.Arity)
	assert.Equal(t, tensor.Float64, sig.Arg(0))
	assert.Equal(t, tensor.Bool, sig.Ret)
}

func TestSignatureOf_ZeroArity(t *testing.T) {
	sig, err := SignatureOf(func() int32 { return 7 })
	require.NoError(t, err)

	assert.Equal(t, 0, sig.Arity)
	assert.True(t, sig.Uniform())
	// Argument queries past the arity still answer with an inert
	// placeholder instead of failing.
	assert.NotPanics(t, func() { _ = sig.Arg(0) })
}

func TestSignatureOf_NonUniform(t *testing.T) {
	sig, err := SignatureOf(func(a float32, b int64) float32 { return a })
	require.NoError(t, err)
	assert.False(t, sig.Uniform())
}

func TestSignatureOf_Rejects(t *testing.T) {
	cases := []struct {
		name string
		fn   any
	}{
		{"NotAFunction", 42},
		{"Nil", nil},
		{"Variadic", func(vs ...float32) float32 { return 0 }},
		{"NoResult", func(a float32) {}},
		{"TwoResults", func(a float32) (float32, error) { return 0, nil }},
		{"UnsupportedArg", func(s string) float32 { return 0 }},
		{"UnsupportedRet", func(a float32) string { return "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := SignatureOf(tc.fn)
			assert.Error(t, err)
		})
	}
}
