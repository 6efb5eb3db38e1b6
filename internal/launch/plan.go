package launch

import (
	"fmt"

	"github.com/weft-ml/weft/internal/tensor"
)

// Plan is the work descriptor for one launch: the iteration shape, the
// output tensor, the input tensors and their broadcast-adjusted strides in
// output coordinates. All tensors are borrowed for the duration of the
// launch and never retained.
type Plan struct {
	N     int
	Shape tensor.Shape

	Out *tensor.RawTensor
	Ins []*tensor.RawTensor

	// strides[0] is the output, strides[1..] the inputs, every vector of
	// length len(Shape) with zero strides for broadcast dimensions.
	strides [][]int

	// contiguous is true when every operand is row-major contiguous over
	// exactly the iteration shape, which is what the vectorized policy
	// requires.
	contiguous bool
}

// NewPlan builds a plan for writing fn(ins...) into out. The output shape
// must equal the broadcast of all input shapes; inputs of smaller or
// size-1 shapes are read with zero strides along the broadcast dimensions.
func NewPlan(out *tensor.RawTensor, ins ...*tensor.RawTensor) (*Plan, error) {
	if out == nil {
		return nil, fmt.Errorf("plan: output tensor is nil")
	}

	shape := out.Shape()
	bcast := tensor.Shape{}
	for i, in := range ins {
		if in == nil {
			return nil, fmt.Errorf("plan: input tensor %d is nil", i)
		}
		next, _, err := tensor.BroadcastShapes(bcast, in.Shape())
		if err != nil {
			return nil, fmt.Errorf("plan: %w", err)
		}
		bcast = next
	}
	if len(ins) > 0 && !shape.Equal(bcast) {
		return nil, fmt.Errorf("plan: output shape %v does not match broadcast shape %v", shape, bcast)
	}

	strides := make([][]int, 0, len(ins)+1)
	strides = append(strides, append([]int(nil), out.Strides()...))

	contiguous := out.IsContiguous()
	for _, in := range ins {
		strides = append(strides, tensor.BroadcastStrides(in.Shape(), in.Strides(), shape))
		if !in.Shape().Equal(shape) || !in.IsContiguous() {
			contiguous = false
		}
	}

	return &Plan{
		N:          shape.NumElements(),
		Shape:      shape.Clone(),
		Out:        out,
		Ins:        ins,
		strides:    strides,
		contiguous: contiguous,
	}, nil
}

// Contiguous reports whether every operand is unit-stride contiguous over
// the iteration shape.
func (p *Plan) Contiguous() bool {
	return p.contiguous
}

// Arity returns the number of input tensors.
func (p *Plan) Arity() int {
	return len(p.Ins)
}

// offsets returns the offset calculator covering all operands, output
// first.
func (p *Plan) offsets() *OffsetCalculator {
	return NewOffsetCalculator(p.Shape, p.strides)
}

// addrs returns the operand base addresses, output first.
func (p *Plan) addrs() []uintptr {
	out := make([]uintptr, 0, len(p.Ins)+1)
	out = append(out, p.Out.BaseAddr())
	for _, in := range p.Ins {
		out = append(out, in.BaseAddr())
	}
	return out
}

// elemSizes returns the operand element sizes, output first.
func (p *Plan) elemSizes() []int {
	out := make([]int, 0, len(p.Ins)+1)
	out = append(out, p.Out.DType().Size())
	for _, in := range p.Ins {
		out = append(out, in.DType().Size())
	}
	return out
}
