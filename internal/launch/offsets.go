package launch

// OffsetCalculator maps a linear work-item index to per-tensor element
// offsets by unraveling the index against the iteration shape in row-major
// order. Stride vectors may contain zeros for broadcast dimensions. The
// calculator is a pure function of its inputs and is safe for concurrent
// use from many blocks.
type OffsetCalculator struct {
	dims    int
	unravel []int   // row-major strides of the iteration shape itself
	strides [][]int // per-tensor element strides, one vector per tensor
}

// NewOffsetCalculator builds a calculator for the given iteration shape and
// k per-tensor stride vectors, each of length len(shape).
func NewOffsetCalculator(shape []int, strides [][]int) *OffsetCalculator {
	dims := len(shape)
	unravel := make([]int, dims)
	if dims > 0 {
		unravel[dims-1] = 1
		for i := dims - 2; i >= 0; i-- {
			unravel[i] = unravel[i+1] * shape[i+1]
		}
	}
	return &OffsetCalculator{
		dims:    dims,
		unravel: unravel,
		strides: strides,
	}
}

// NumTensors returns the number of per-tensor offsets produced per index.
func (c *OffsetCalculator) NumTensors() int {
	return len(c.strides)
}

// OffsetsInto fills out with the per-tensor element offsets for the given
// linear index. For rank 0 every offset is zero (the scalar case). Valid
// for 0 <= linear < product(shape).
func (c *OffsetCalculator) OffsetsInto(out []int, linear int) {
	for k := range out {
		out[k] = 0
	}
	for dim := 0; dim < c.dims; dim++ {
		coord := linear / c.unravel[dim]
		linear %= c.unravel[dim]
		for k, s := range c.strides {
			out[k] += coord * s[dim]
		}
	}
}

// Offsets returns a freshly allocated offset vector for the given linear
// index. Hot paths should use OffsetsInto with a reused buffer.
func (c *OffsetCalculator) Offsets(linear int) []int {
	out := make([]int, len(c.strides))
	c.OffsetsInto(out, linear)
	return out
}

// Offset is the single-tensor fast form: it returns the first tensor's
// element offset for the given linear index without touching a scratch
// vector.
func (c *OffsetCalculator) Offset(linear int) int {
	off := 0
	for dim := 0; dim < c.dims; dim++ {
		coord := linear / c.unravel[dim]
		linear %= c.unravel[dim]
		off += coord * c.strides[0][dim]
	}
	return off
}
