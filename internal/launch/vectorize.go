package launch

import (
	"golang.org/x/sys/cpu"
)

// Vectorization width selection. The width is the number of elements moved
// per memory transaction by the vectorized policy; it is chosen once per
// launch from the operand base addresses alone and never exceeds the
// largest width every operand is aligned for. Width 1 is always valid.

// platformMaxWidth caps the width by what the host can usefully vectorize.
// Both mainstream 64-bit targets report 128-bit SIMD, which covers four
// 4-byte lanes.
func platformMaxWidth() int {
	if cpu.X86.HasSSE2 || cpu.ARM64.HasASIMD {
		return MaxWidth
	}
	return 2
}

// widthForAddr returns the largest power-of-two width w, capped at max,
// such that addr is aligned to w*elemSize bytes.
func widthForAddr(addr uintptr, elemSize, max int) int {
	for w := max; w > 1; w >>= 1 {
		if addr%uintptr(w*elemSize) == 0 {
			return w
		}
	}
	return 1
}

// SelectWidth returns the vectorization width for a launch given the
// operand base addresses (output first) and their element sizes. The
// result is the minimum feasible width across all operands.
func SelectWidth(addrs []uintptr, elemSizes []int) int {
	width := platformMaxWidth()
	for i, addr := range addrs {
		if w := widthForAddr(addr, elemSizes[i], width); w < width {
			width = w
		}
	}
	return width
}
