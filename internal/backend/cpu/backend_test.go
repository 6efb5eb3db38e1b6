package cpu

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/weft-ml/weft/internal/tensor"
)

func mustFromSlice[T tensor.Elem](t *testing.T, values []T, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.FromSlice(values, shape)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	return r
}

func toF64(xs []float32) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}

func TestAdd(t *testing.T) {
	backend := New()

	a := mustFromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := mustFromSlice(t, []float32{10, 20, 30, 40}, tensor.Shape{2, 2})

	result := backend.Add(a, b)

	want := []float32{11, 22, 33, 44}
	got := result.AsFloat32()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Add[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAddBroadcast(t *testing.T) {
	backend := New()

	// [2,3] + [3] broadcasts the row vector across both rows.
	a := mustFromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := mustFromSlice(t, []float32{10, 20, 30}, tensor.Shape{3})

	result := backend.Add(a, b)

	if !result.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("result shape = %v, want [2 3]", result.Shape())
	}
	want := []float32{11, 22, 33, 14, 25, 36}
	got := result.AsFloat32()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Add[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAddInt64(t *testing.T) {
	backend := New()

	a := mustFromSlice(t, []int64{1, 2, 3}, tensor.Shape{3})
	b := mustFromSlice(t, []int64{100, 200, 300}, tensor.Shape{3})

	got := backend.Add(a, b).AsInt64()
	want := []int64{101, 202, 303}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Add[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSubMulDiv(t *testing.T) {
	backend := New()

	a := mustFromSlice(t, []float32{10, 20, 30, 40}, tensor.Shape{4})
	b := mustFromSlice(t, []float32{2, 4, 5, 8}, tensor.Shape{4})

	sub := backend.Sub(a, b).AsFloat32()
	mul := backend.Mul(a, b).AsFloat32()
	div := backend.Div(a, b).AsFloat32()

	wantSub := []float32{8, 16, 25, 32}
	wantMul := []float32{20, 80, 150, 320}
	wantDiv := []float32{5, 5, 6, 5}
	for i := 0; i < 4; i++ {
		if sub[i] != wantSub[i] {
			t.Errorf("Sub[%d] = %v, want %v", i, sub[i], wantSub[i])
		}
		if mul[i] != wantMul[i] {
			t.Errorf("Mul[%d] = %v, want %v", i, mul[i], wantMul[i])
		}
		if div[i] != wantDiv[i] {
			t.Errorf("Div[%d] = %v, want %v", i, div[i], wantDiv[i])
		}
	}
}

func TestLargeAddMatchesReference(t *testing.T) {
	backend := New()

	// Large enough to cover several grid blocks plus a partial tail.
	const n = 5000
	av := make([]float32, n)
	bv := make([]float32, n)
	want := make([]float64, n)
	for i := 0; i < n; i++ {
		av[i] = float32(i) * 0.25
		bv[i] = float32(n-i) * 0.5
		want[i] = float64(av[i]) + float64(bv[i])
	}
	a := mustFromSlice(t, av, tensor.Shape{n})
	b := mustFromSlice(t, bv, tensor.Shape{n})

	got := toF64(backend.Add(a, b).AsFloat32())
	if !floats.EqualApprox(got, want, 1e-6) {
		t.Error("large Add does not match the scalar reference")
	}
}

func TestScalarOps(t *testing.T) {
	backend := New()

	x := mustFromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{4})

	add := backend.AddScalar(x, float32(10)).AsFloat32()
	sub := backend.SubScalar(x, float32(1)).AsFloat32()
	mul := backend.MulScalar(x, float32(3)).AsFloat32()
	div := backend.DivScalar(x, float32(2)).AsFloat32()

	wantAdd := []float32{11, 12, 13, 14}
	wantSub := []float32{0, 1, 2, 3}
	wantMul := []float32{3, 6, 9, 12}
	wantDiv := []float32{0.5, 1, 1.5, 2}
	for i := 0; i < 4; i++ {
		if add[i] != wantAdd[i] {
			t.Errorf("AddScalar[%d] = %v, want %v", i, add[i], wantAdd[i])
		}
		if sub[i] != wantSub[i] {
			t.Errorf("SubScalar[%d] = %v, want %v", i, sub[i], wantSub[i])
		}
		if mul[i] != wantMul[i] {
			t.Errorf("MulScalar[%d] = %v, want %v", i, mul[i], wantMul[i])
		}
		if div[i] != wantDiv[i] {
			t.Errorf("DivScalar[%d] = %v, want %v", i, div[i], wantDiv[i])
		}
	}
}

func TestScalarOpAcceptsUntypedScalar(t *testing.T) {
	backend := New()

	x := mustFromSlice(t, []int32{1, 2, 3}, tensor.Shape{3})
	got := backend.AddScalar(x, 10).AsInt32()
	want := []int32{11, 12, 13}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AddScalar[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestExpLogSqrt(t *testing.T) {
	backend := New()

	vals := []float64{0.5, 1, 2, 4, 9}
	x := mustFromSlice(t, vals, tensor.Shape{5})

	exp := backend.Exp(x).AsFloat64()
	log := backend.Log(x).AsFloat64()
	sqrt := backend.Sqrt(x).AsFloat64()

	for i, v := range vals {
		if exp[i] != math.Exp(v) {
			t.Errorf("Exp[%d] = %v, want %v", i, exp[i], math.Exp(v))
		}
		if log[i] != math.Log(v) {
			t.Errorf("Log[%d] = %v, want %v", i, log[i], math.Log(v))
		}
		if sqrt[i] != math.Sqrt(v) {
			t.Errorf("Sqrt[%d] = %v, want %v", i, sqrt[i], math.Sqrt(v))
		}
	}
}

func TestNeg(t *testing.T) {
	backend := New()

	x := mustFromSlice(t, []int32{1, -2, 3, 0}, tensor.Shape{4})
	got := backend.Neg(x).AsInt32()
	want := []int32{-1, 2, -3, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Neg[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestClamp(t *testing.T) {
	backend := New()

	x := mustFromSlice(t, []float32{-5, -1, 0, 1, 5}, tensor.Shape{5})
	got := backend.Clamp(x, -1, 1).AsFloat32()
	want := []float32{-1, -1, 0, 1, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Clamp[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestComparisons(t *testing.T) {
	backend := New()

	a := mustFromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{4})
	b := mustFromSlice(t, []float32{2, 2, 2, 2}, tensor.Shape{4})

	cases := []struct {
		name string
		got  []bool
		want []bool
	}{
		{"Greater", backend.Greater(a, b).AsBool(), []bool{false, false, true, true}},
		{"Lower", backend.Lower(a, b).AsBool(), []bool{true, false, false, false}},
		{"GreaterEqual", backend.GreaterEqual(a, b).AsBool(), []bool{false, true, true, true}},
		{"LowerEqual", backend.LowerEqual(a, b).AsBool(), []bool{true, true, false, false}},
		{"Equal", backend.Equal(a, b).AsBool(), []bool{false, true, false, false}},
		{"NotEqual", backend.NotEqual(a, b).AsBool(), []bool{true, false, true, true}},
	}
	for _, tc := range cases {
		for i := range tc.want {
			if tc.got[i] != tc.want[i] {
				t.Errorf("%s[%d] = %v, want %v", tc.name, i, tc.got[i], tc.want[i])
			}
		}
	}
}

func TestWhere(t *testing.T) {
	backend := New()

	cond := mustFromSlice(t, []bool{true, false, true, false}, tensor.Shape{4})
	x := mustFromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{4})
	y := mustFromSlice(t, []float32{10, 20, 30, 40}, tensor.Shape{4})

	got := backend.Where(cond, x, y).AsFloat32()
	want := []float32{1, 20, 3, 40}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Where[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestWhereInt64(t *testing.T) {
	backend := New()

	// Large values prove the branch tensors keep int64 precision.
	big := int64(1<<62 + 1)
	cond := mustFromSlice(t, []bool{true, false}, tensor.Shape{2})
	x := mustFromSlice(t, []int64{big, big}, tensor.Shape{2})
	y := mustFromSlice(t, []int64{-big, -big}, tensor.Shape{2})

	got := backend.Where(cond, x, y).AsInt64()
	want := []int64{big, -big}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Where[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFill(t *testing.T) {
	backend := New()

	x := mustFromSlice(t, make([]float32, 6), tensor.Shape{2, 3})
	backend.Fill(x, 3.5)

	for i, v := range x.AsFloat32() {
		if v != 3.5 {
			t.Errorf("Fill[%d] = %v, want 3.5", i, v)
		}
	}
}

func TestCast(t *testing.T) {
	backend := New()

	t.Run("Float32ToInt32", func(t *testing.T) {
		x := mustFromSlice(t, []float32{1.9, -2.1, 3, 0}, tensor.Shape{4})
		got := backend.Cast(x, tensor.Int32).AsInt32()
		want := []int32{1, -2, 3, 0}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Cast[%d] = %v, want %v", i, got[i], want[i])
			}
		}
	})

	t.Run("Int32ToFloat32", func(t *testing.T) {
		x := mustFromSlice(t, []int32{1, -2, 3}, tensor.Shape{3})
		got := backend.Cast(x, tensor.Float32).AsFloat32()
		want := []float32{1, -2, 3}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Cast[%d] = %v, want %v", i, got[i], want[i])
			}
		}
	})

	t.Run("Float32ToBoolDynamic", func(t *testing.T) {
		x := mustFromSlice(t, []float32{0, 1, -0.5, 0}, tensor.Shape{4})
		got := backend.Cast(x, tensor.Bool).AsBool()
		want := []bool{false, true, true, false}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Cast[%d] = %v, want %v", i, got[i], want[i])
			}
		}
	})

	t.Run("SameDTypeIsIdentity", func(t *testing.T) {
		x := mustFromSlice(t, []float32{1, 2}, tensor.Shape{2})
		if backend.Cast(x, tensor.Float32) != x {
			t.Error("Cast to the same dtype should return the input tensor")
		}
	})
}

func TestBackendName(t *testing.T) {
	backend := New()
	if backend.Name() != "CPU" {
		t.Errorf("Name() = %q, want CPU", backend.Name())
	}
}
