package launch

import (
	"fmt"
	"unsafe"

	"github.com/weft-ml/weft/internal/tensor"
)

// blockKernel processes one block of the launch grid. block is the block
// index; remaining is how many of the block's BlockWorkSize elements are
// in range (BlockWorkSize for every block but possibly the last).
type blockKernel func(block, remaining int)

// blockDispatch selects the execution policy per block: full blocks run
// the vectorized policy, the trailing partial block runs the checked one.
// Both produce identical numeric results; only the access pattern differs.
func blockDispatch(vectorized, checked blockKernel) blockKernel {
	return func(block, remaining int) {
		if remaining == BlockWorkSize {
			vectorized(block, remaining)
		} else {
			checked(block, remaining)
		}
	}
}

// unexpectedWidth reports a width the driver has no specialization for.
// The selector is the sole gate onto the vectorized policy, so reaching
// this is an implementer bug, not a recoverable condition.
func unexpectedWidth(width int) {
	panic(fmt.Sprintf("launch: unexpected vectorization size %d", width))
}

// Vectorized policy.
//
// Each thread moves ThreadWorkSize elements in width-w transactions, with
// consecutive transactions spread across the block's threads so a block
// touches memory front to back in wide, aligned chunks. Values are loaded
// into locals before any store, which keeps in-place aliasing
// (output == input) safe within a chunk. Only legal for full blocks over
// contiguous operands whose base addresses passed the width selector.

func vecKernel1[I, O tensor.Elem](out []O, in []I, fn func(I) O, width int) blockKernel {
	switch width {
	case 4:
		return func(block, _ int) {
			base := block * BlockWorkSize
			for i := 0; i < ThreadWorkSize/4; i++ {
				for t := 0; t < NumThreads; t++ {
					idx := base + (i*NumThreads+t)*4
					v := *(*[4]I)(unsafe.Pointer(&in[idx]))
					var r [4]O
					r[0], r[1], r[2], r[3] = fn(v[0]), fn(v[1]), fn(v[2]), fn(v[3])
					*(*[4]O)(unsafe.Pointer(&out[idx])) = r
				}
			}
		}
	case 2:
		return func(block, _ int) {
			base := block * BlockWorkSize
			for i := 0; i < ThreadWorkSize/2; i++ {
				for t := 0; t < NumThreads; t++ {
					idx := base + (i*NumThreads+t)*2
					v := *(*[2]I)(unsafe.Pointer(&in[idx]))
					var r [2]O
					r[0], r[1] = fn(v[0]), fn(v[1])
					*(*[2]O)(unsafe.Pointer(&out[idx])) = r
				}
			}
		}
	case 1:
		return func(block, _ int) {
			base := block * BlockWorkSize
			for i := 0; i < ThreadWorkSize; i++ {
				for t := 0; t < NumThreads; t++ {
					idx := base + i*NumThreads + t
					out[idx] = fn(in[idx])
				}
			}
		}
	default:
		unexpectedWidth(width)
		return nil
	}
}

func vecKernel2[I, O tensor.Elem](out []O, a, b []I, fn func(I, I) O, width int) blockKernel {
	switch width {
	case 4:
		return func(block, _ int) {
			base := block * BlockWorkSize
			for i := 0; i < ThreadWorkSize/4; i++ {
				for t := 0; t < NumThreads; t++ {
					idx := base + (i*NumThreads+t)*4
					va := *(*[4]I)(unsafe.Pointer(&a[idx]))
					vb := *(*[4]I)(unsafe.Pointer(&b[idx]))
					var r [4]O
					r[0], r[1], r[2], r[3] = fn(va[0], vb[0]), fn(va[1], vb[1]), fn(va[2], vb[2]), fn(va[3], vb[3])
					*(*[4]O)(unsafe.Pointer(&out[idx])) = r
				}
			}
		}
	case 2:
		return func(block, _ int) {
			base := block * BlockWorkSize
			for i := 0; i < ThreadWorkSize/2; i++ {
				for t := 0; t < NumThreads; t++ {
					idx := base + (i*NumThreads+t)*2
					va := *(*[2]I)(unsafe.Pointer(&a[idx]))
					vb := *(*[2]I)(unsafe.Pointer(&b[idx]))
					var r [2]O
					r[0], r[1] = fn(va[0], vb[0]), fn(va[1], vb[1])
					*(*[2]O)(unsafe.Pointer(&out[idx])) = r
				}
			}
		}
	case 1:
		return func(block, _ int) {
			base := block * BlockWorkSize
			for i := 0; i < ThreadWorkSize; i++ {
				for t := 0; t < NumThreads; t++ {
					idx := base + i*NumThreads + t
					out[idx] = fn(a[idx], b[idx])
				}
			}
		}
	default:
		unexpectedWidth(width)
		return nil
	}
}

func vecKernel3[I, O tensor.Elem](out []O, a, b, c []I, fn func(I, I, I) O, width int) blockKernel {
	switch width {
	case 4:
		return func(block, _ int) {
			base := block * BlockWorkSize
			for i := 0; i < ThreadWorkSize/4; i++ {
				for t := 0; t < NumThreads; t++ {
					idx := base + (i*NumThreads+t)*4
					va := *(*[4]I)(unsafe.Pointer(&a[idx]))
					vb := *(*[4]I)(unsafe.Pointer(&b[idx]))
					vc := *(*[4]I)(unsafe.Pointer(&c[idx]))
					var r [4]O
					for j := 0; j < 4; j++ {
						r[j] = fn(va[j], vb[j], vc[j])
					}
					*(*[4]O)(unsafe.Pointer(&out[idx])) = r
				}
			}
		}
	case 2:
		return func(block, _ int) {
			base := block * BlockWorkSize
			for i := 0; i < ThreadWorkSize/2; i++ {
				for t := 0; t < NumThreads; t++ {
					idx := base + (i*NumThreads+t)*2
					va := *(*[2]I)(unsafe.Pointer(&a[idx]))
					vb := *(*[2]I)(unsafe.Pointer(&b[idx]))
					vc := *(*[2]I)(unsafe.Pointer(&c[idx]))
					var r [2]O
					r[0], r[1] = fn(va[0], vb[0], vc[0]), fn(va[1], vb[1], vc[1])
					*(*[2]O)(unsafe.Pointer(&out[idx])) = r
				}
			}
		}
	case 1:
		return func(block, _ int) {
			base := block * BlockWorkSize
			for i := 0; i < ThreadWorkSize; i++ {
				for t := 0; t < NumThreads; t++ {
					idx := base + i*NumThreads + t
					out[idx] = fn(a[idx], b[idx], c[idx])
				}
			}
		}
	default:
		unexpectedWidth(width)
		return nil
	}
}

// Checked policy.
//
// Per-thread, per-work-item element accesses with an explicit bounds check
// against remaining before every load and store. Slots past remaining are
// never touched. Used for the trailing partial block and whenever the
// vectorization preconditions fail.

func checkedKernel0[O tensor.Elem](out []O, fn func() O) blockKernel {
	return func(block, remaining int) {
		base := block * BlockWorkSize
		for i := 0; i < ThreadWorkSize; i++ {
			for t := 0; t < NumThreads; t++ {
				k := i*NumThreads + t
				if k < remaining {
					out[base+k] = fn()
				}
			}
		}
	}
}

func checkedKernel1[I, O tensor.Elem](out []O, in []I, fn func(I) O) blockKernel {
	return func(block, remaining int) {
		base := block * BlockWorkSize
		for i := 0; i < ThreadWorkSize; i++ {
			for t := 0; t < NumThreads; t++ {
				k := i*NumThreads + t
				if k < remaining {
					out[base+k] = fn(in[base+k])
				}
			}
		}
	}
}

func checkedKernel2[I, O tensor.Elem](out []O, a, b []I, fn func(I, I) O) blockKernel {
	return func(block, remaining int) {
		base := block * BlockWorkSize
		for i := 0; i < ThreadWorkSize; i++ {
			for t := 0; t < NumThreads; t++ {
				k := i*NumThreads + t
				if k < remaining {
					out[base+k] = fn(a[base+k], b[base+k])
				}
			}
		}
	}
}

func checkedKernel3[I, O tensor.Elem](out []O, a, b, c []I, fn func(I, I, I) O) blockKernel {
	return func(block, remaining int) {
		base := block * BlockWorkSize
		for i := 0; i < ThreadWorkSize; i++ {
			for t := 0; t < NumThreads; t++ {
				k := i*NumThreads + t
				if k < remaining {
					out[base+k] = fn(a[base+k], b[base+k], c[base+k])
				}
			}
		}
	}
}

// Strided policy.
//
// One thread processes ThreadWorkSize elements through the offset
// calculator, one offset vector per element. Serves non-contiguous and
// broadcast operands, where wide transactions are never legal.

func stridedKernel1[I, O tensor.Elem](out []O, in []I, calc *OffsetCalculator, fn func(I) O) blockKernel {
	return func(block, remaining int) {
		var offs [2]int
		base := block * BlockWorkSize
		for k := 0; k < remaining; k++ {
			calc.OffsetsInto(offs[:], base+k)
			out[offs[0]] = fn(in[offs[1]])
		}
	}
}

func stridedKernel2[I, O tensor.Elem](out []O, a, b []I, calc *OffsetCalculator, fn func(I, I) O) blockKernel {
	return func(block, remaining int) {
		var offs [3]int
		base := block * BlockWorkSize
		for k := 0; k < remaining; k++ {
			calc.OffsetsInto(offs[:], base+k)
			out[offs[0]] = fn(a[offs[1]], b[offs[2]])
		}
	}
}

func stridedKernel3[I, O tensor.Elem](out []O, a, b, c []I, calc *OffsetCalculator, fn func(I, I, I) O) blockKernel {
	return func(block, remaining int) {
		var offs [4]int
		base := block * BlockWorkSize
		for k := 0; k < remaining; k++ {
			calc.OffsetsInto(offs[:], base+k)
			out[offs[0]] = fn(a[offs[1]], b[offs[2]], c[offs[3]])
		}
	}
}
