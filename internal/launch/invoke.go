package launch

import (
	"fmt"
	"reflect"

	"github.com/weft-ml/weft/internal/tensor"
)

// Static invocation mode: the typed entry points below compile the user
// function into a typed block kernel with no per-element boxing. All
// positional arguments share one element type, which may differ from the
// result type (a predicate takes float32 and returns bool).
//
// Each entry point is the engine's single dispatch seam: contiguous plans
// go through the width selector onto the vectorized/checked policy pair,
// everything else takes the strided policy through the offset calculator.

// Run0 fills the output by invoking a zero-arity function once per
// element.
func Run0[O tensor.Elem](p *Plan, fn func() O, opts ...Option) error {
	sig, err := SignatureOf(fn)
	if err != nil {
		return fmt.Errorf("launch: %w", err)
	}
	assertArity(p, sig)

	out := tensor.As[O](p.Out)
	if p.Contiguous() {
		return run(p.N, checkedKernel0(out, fn), opts)
	}

	calc := p.offsets()
	kern := func(block, remaining int) {
		base := block * BlockWorkSize
		for k := 0; k < remaining; k++ {
			out[calc.Offset(base+k)] = fn()
		}
	}
	return run(p.N, kern, opts)
}

// Run1 applies a unary function over the plan.
func Run1[I, O tensor.Elem](p *Plan, fn func(I) O, opts ...Option) error {
	sig, err := SignatureOf(fn)
	if err != nil {
		return fmt.Errorf("launch: %w", err)
	}
	assertArity(p, sig)

	out := tensor.As[O](p.Out)
	in := tensor.As[I](p.Ins[0])

	if p.Contiguous() {
		width := SelectWidth(p.addrs(), p.elemSizes())
		kern := blockDispatch(vecKernel1(out, in, fn, width), checkedKernel1(out, in, fn))
		return run(p.N, kern, opts)
	}
	return run(p.N, stridedKernel1(out, in, p.offsets(), fn), opts)
}

// Run2 applies a binary function over the plan.
func Run2[I, O tensor.Elem](p *Plan, fn func(I, I) O, opts ...Option) error {
	sig, err := SignatureOf(fn)
	if err != nil {
		return fmt.Errorf("launch: %w", err)
	}
	assertArity(p, sig)

	out := tensor.As[O](p.Out)
	a := tensor.As[I](p.Ins[0])
	b := tensor.As[I](p.Ins[1])

	if p.Contiguous() {
		width := SelectWidth(p.addrs(), p.elemSizes())
		kern := blockDispatch(vecKernel2(out, a, b, fn, width), checkedKernel2(out, a, b, fn))
		return run(p.N, kern, opts)
	}
	return run(p.N, stridedKernel2(out, a, b, p.offsets(), fn), opts)
}

// Run3 applies a ternary function over the plan.
func Run3[I, O tensor.Elem](p *Plan, fn func(I, I, I) O, opts ...Option) error {
	sig, err := SignatureOf(fn)
	if err != nil {
		return fmt.Errorf("launch: %w", err)
	}
	assertArity(p, sig)

	out := tensor.As[O](p.Out)
	a := tensor.As[I](p.Ins[0])
	b := tensor.As[I](p.Ins[1])
	c := tensor.As[I](p.Ins[2])

	if p.Contiguous() {
		width := SelectWidth(p.addrs(), p.elemSizes())
		kern := blockDispatch(vecKernel3(out, a, b, c, fn, width), checkedKernel3(out, a, b, c, fn))
		return run(p.N, kern, opts)
	}
	return run(p.N, stridedKernel3(out, a, b, c, p.offsets(), fn), opts)
}

// Run2Scalar applies a binary function whose second operand is a
// host-resident scalar. The scalar travels by value inside the kernel
// closure; it is never materialized into a tensor buffer or copied to
// device memory. The plan therefore carries a single input tensor.
func Run2Scalar[I, O tensor.Elem](p *Plan, s I, fn func(I, I) O, opts ...Option) error {
	return Run1(p, func(x I) O { return fn(x, s) }, opts...)
}

// RunDynamic is the dynamic-cast invocation mode: each input element is
// fetched from its runtime-tagged storage type and cast to the function's
// declared argument type before the call, and the result is cast to the
// output tensor's dtype on store. This supports mixed-dtype operands
// (an int32 tensor combined with a float function) at the price of a
// reflective call per element; it is the fallback whenever compile-time
// dtype uniformity cannot be assumed, and always takes the strided path.
func RunDynamic(p *Plan, fn any, opts ...Option) error {
	sig, err := SignatureOf(fn)
	if err != nil {
		return fmt.Errorf("launch: %w", err)
	}
	assertArity(p, sig)

	calc := p.offsets()
	ins := p.Ins
	out := p.Out

	kern := func(block, remaining int) {
		offs := make([]int, 1+sig.Arity)
		args := make([]reflect.Value, sig.Arity)
		base := block * BlockWorkSize
		for k := 0; k < remaining; k++ {
			calc.OffsetsInto(offs, base+k)
			for i := range ins {
				v := tensor.CastScalar(ins[i].ScalarAt(offs[1+i]), sig.Args[i])
				args[i] = reflect.ValueOf(v)
			}
			res := sig.Call(args)
			out.SetScalarAt(offs[0], res.Interface())
		}
	}
	return run(p.N, kern, opts)
}
