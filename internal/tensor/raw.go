package tensor

import (
	"fmt"
	"unsafe"

	"github.com/weft-ml/weft/internal/device"
)

// RawTensor is the low-level tensor representation: a flat byte buffer
// plus shape, element strides and a runtime dtype tag. Views produced by
// WithStrides share the buffer, so a RawTensor never owns more than the
// lifetime of its underlying allocation.
type RawTensor struct {
	data   []byte
	shape  Shape
	stride []int    // element strides, row-major for fresh tensors
	dtype  DataType // runtime type tag
	device device.Device
}

// NewRaw creates a new RawTensor with the given shape and type.
// Memory is allocated and zeroed.
func NewRaw(shape Shape, dtype DataType, dev device.Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	byteSize := shape.NumElements() * dtype.Size()

	return &RawTensor{
		data:   make([]byte, byteSize),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: dev,
	}, nil
}

// FromSlice creates a CPU tensor that copies the given elements into a
// fresh buffer with the given shape.
func FromSlice[T Elem](values []T, shape Shape) (*RawTensor, error) {
	if len(values) != shape.NumElements() {
		return nil, fmt.Errorf("slice length %d does not match shape %v (%d elements)",
			len(values), shape, shape.NumElements())
	}
	r, err := NewRaw(shape, TypeOf[T](), device.CPU)
	if err != nil {
		return nil, err
	}
	copy(As[T](r), values)
	return r, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's element strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() device.Device {
	return r.device
}

// NumElements returns the total number of logical elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the size of the underlying buffer in bytes.
func (r *RawTensor) ByteSize() int {
	return len(r.data)
}

// Data returns the raw byte slice.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	return r.data
}

// BaseAddr returns the address of the first byte of the buffer. The
// vectorization width selector keys its alignment decision off this.
func (r *RawTensor) BaseAddr() uintptr {
	if len(r.data) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&r.data[0]))
}

// IsContiguous reports whether the tensor's strides are the canonical
// row-major strides for its shape, i.e. a flat walk of the buffer visits
// elements in logical order with no gaps.
func (r *RawTensor) IsContiguous() bool {
	want := r.shape.ComputeStrides()
	for i := range want {
		if r.shape[i] != 1 && r.stride[i] != want[i] {
			return false
		}
	}
	return true
}

// WithStrides returns a view over the same buffer with a different shape
// and element strides. The view must not address past the end of the
// buffer.
func (r *RawTensor) WithStrides(shape Shape, strides []int) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if len(strides) != len(shape) {
		return nil, fmt.Errorf("strides length %d does not match rank %d", len(strides), len(shape))
	}

	// Furthest element the view can touch.
	last := 0
	for i, dim := range shape {
		last += (dim - 1) * strides[i]
	}
	if (last+1)*r.dtype.Size() > len(r.data) {
		return nil, fmt.Errorf("strided view %v/%v exceeds buffer of %d bytes", shape, strides, len(r.data))
	}

	return &RawTensor{
		data:   r.data,
		shape:  shape.Clone(),
		stride: append([]int(nil), strides...),
		dtype:  r.dtype,
		device: r.device,
	}, nil
}

// Clone returns a deep copy of the tensor.
func (r *RawTensor) Clone() *RawTensor {
	data := make([]byte, len(r.data))
	copy(data, r.data)
	return &RawTensor{
		data:   data,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
		device: r.device,
	}
}

// As interprets the underlying buffer as a []T covering its full extent.
// Panics if the tensor's dtype does not match T.
func As[T Elem](r *RawTensor) []T {
	if want := TypeOf[T](); r.dtype != want {
		panic(fmt.Sprintf("tensor dtype is %s, not %s", r.dtype, want))
	}
	if len(r.data) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy views, extent bounded by the buffer
	return unsafe.Slice((*T)(unsafe.Pointer(&r.data[0])), len(r.data)/r.dtype.Size())
}

// AsFloat32 interprets the data as []float32.
func (r *RawTensor) AsFloat32() []float32 { return As[float32](r) }

// AsFloat64 interprets the data as []float64.
func (r *RawTensor) AsFloat64() []float64 { return As[float64](r) }

// AsInt32 interprets the data as []int32.
func (r *RawTensor) AsInt32() []int32 { return As[int32](r) }

// AsInt64 interprets the data as []int64.
func (r *RawTensor) AsInt64() []int64 { return As[int64](r) }

// AsUint8 interprets the data as []uint8.
func (r *RawTensor) AsUint8() []uint8 { return As[uint8](r) }

// AsBool interprets the data as []bool.
func (r *RawTensor) AsBool() []bool { return As[bool](r) }
