package tensor

import (
	"testing"

	"github.com/weft-ml/weft/internal/device"
)

func TestNewRaw(t *testing.T) {
	r, err := NewRaw(Shape{2, 3}, Float32, device.CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	if r.NumElements() != 6 {
		t.Errorf("NumElements = %d, want 6", r.NumElements())
	}
	if r.ByteSize() != 24 {
		t.Errorf("ByteSize = %d, want 24", r.ByteSize())
	}
	if !r.IsContiguous() {
		t.Error("fresh tensor not contiguous")
	}

	if _, err := NewRaw(Shape{2, 0}, Float32, device.CPU); err == nil {
		t.Error("zero dimension accepted")
	}
}

func TestFromSlice(t *testing.T) {
	r, err := FromSlice([]float32{1, 2, 3, 4}, Shape{2, 2})
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	data := r.AsFloat32()
	for i, want := range []float32{1, 2, 3, 4} {
		if data[i] != want {
			t.Errorf("data[%d] = %v, want %v", i, data[i], want)
		}
	}

	if _, err := FromSlice([]float32{1, 2, 3}, Shape{2, 2}); err == nil {
		t.Error("length mismatch accepted")
	}
}

func TestAs_WrongDtypePanics(t *testing.T) {
	r, _ := NewRaw(Shape{4}, Float32, device.CPU)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for dtype mismatch")
		}
	}()
	r.AsInt64()
}

func TestWithStrides(t *testing.T) {
	r, _ := FromSlice([]float32{0, 1, 2, 3, 4, 5}, Shape{2, 3})

	// Transposed view: shape (3, 2) with strides (1, 3).
	v, err := r.WithStrides(Shape{3, 2}, []int{1, 3})
	if err != nil {
		t.Fatalf("WithStrides: %v", err)
	}
	if v.IsContiguous() {
		t.Error("transposed view reported contiguous")
	}
	// Views share the buffer.
	v.AsFloat32()[0] = 42
	if r.AsFloat32()[0] != 42 {
		t.Error("view does not share buffer")
	}

	if _, err := r.WithStrides(Shape{4, 3}, []int{3, 1}); err == nil {
		t.Error("out-of-bounds view accepted")
	}
}

func TestScalarAtAndSet(t *testing.T) {
	r, _ := FromSlice([]int32{10, 20, 30}, Shape{3})
	if got := r.ScalarAt(1).(int32); got != 20 {
		t.Errorf("ScalarAt(1) = %v, want 20", got)
	}

	r.SetScalarAt(2, float64(7.9)) // cast on store truncates
	if got := r.AsInt32()[2]; got != 7 {
		t.Errorf("after SetScalarAt, data[2] = %v, want 7", got)
	}
}

func TestCastScalar(t *testing.T) {
	if got := CastScalar(float32(3.7), Int32).(int32); got != 3 {
		t.Errorf("float32->int32 = %v, want 3", got)
	}
	if got := CastScalar(int64(5), Float64).(float64); got != 5.0 {
		t.Errorf("int64->float64 = %v, want 5", got)
	}
	if got := CastScalar(true, Float32).(float32); got != 1 {
		t.Errorf("bool->float32 = %v, want 1", got)
	}
	if got := CastScalar(float64(0), Bool).(bool); got {
		t.Error("0->bool = true, want false")
	}
	if got := CastScalar(uint8(2), Bool).(bool); !got {
		t.Error("2->bool = false, want true")
	}
}

func TestCastScalar_Int64Exact(t *testing.T) {
	// Values beyond 2^53 are not representable in float64; integer casts
	// must not round-trip through it.
	big := int64(1<<62 + 1)
	if got := CastScalar(big, Int64).(int64); got != big {
		t.Errorf("int64->int64 = %d, want %d", got, big)
	}
	if got := CastScalar(big, Bool).(bool); !got {
		t.Error("big int64 -> bool = false, want true")
	}

	r, _ := FromSlice([]int64{big}, Shape{1})
	r.SetScalarAt(0, r.ScalarAt(0))
	if got := r.AsInt64()[0]; got != big {
		t.Errorf("fetch/store round trip = %d, want %d", got, big)
	}
}
