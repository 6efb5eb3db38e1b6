package cpu

import (
	"fmt"

	"github.com/weft-ml/weft/internal/launch"
	"github.com/weft-ml/weft/internal/tensor"
)

// Cast converts the tensor to a different data type.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	// No-op if same dtype
	if x.DType() == dtype {
		return x
	}

	result, plan := cpu.unaryPlan("cast", x, dtype)

	var err error
	switch {
	// Hot pairs get typed kernels; the source and result element types
	// differ, which the static entry points support directly.
	case x.DType() == tensor.Float32 && dtype == tensor.Float64:
		err = launch.Run1(plan, func(v float32) float64 { return float64(v) }, launch.Synchronous())
	case x.DType() == tensor.Float64 && dtype == tensor.Float32:
		err = launch.Run1(plan, func(v float64) float32 { return float32(v) }, launch.Synchronous())
	case x.DType() == tensor.Int32 && dtype == tensor.Float32:
		err = launch.Run1(plan, func(v int32) float32 { return float32(v) }, launch.Synchronous())
	case x.DType() == tensor.Int64 && dtype == tensor.Float32:
		err = launch.Run1(plan, func(v int64) float32 { return float32(v) }, launch.Synchronous())
	case x.DType() == tensor.Float32 && dtype == tensor.Int32:
		err = launch.Run1(plan, func(v float32) int32 { return int32(v) }, launch.Synchronous())
	default:
		// Remaining pairs go through the dynamic-cast mode, which fetches
		// from the runtime-tagged storage type and casts on store.
		err = launch.RunDynamic(plan, identityFor(dtype), launch.Synchronous())
	}
	if err != nil {
		panic(fmt.Sprintf("cast: %v", err))
	}
	return result
}

// identityFor returns the identity function in the given element type; the
// dynamic adapter's fetch-and-cast does the actual conversion around it.
func identityFor(dtype tensor.DataType) any {
	switch dtype {
	case tensor.Float32:
		return func(v float32) float32 { return v }
	case tensor.Float64:
		return func(v float64) float64 { return v }
	case tensor.Int32:
		return func(v int32) int32 { return v }
	case tensor.Int64:
		return func(v int64) int64 { return v }
	case tensor.Uint8:
		return func(v uint8) uint8 { return v }
	case tensor.Bool:
		return func(v float64) bool { return v != 0 }
	default:
		panic(fmt.Sprintf("cast: unsupported target dtype %v", dtype))
	}
}
