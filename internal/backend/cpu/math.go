package cpu

import (
	"fmt"
	"math"

	"github.com/weft-ml/weft/internal/launch"
	"github.com/weft-ml/weft/internal/tensor"
)

// Math operations (element-wise).

func (cpu *CPUBackend) unaryFloat(op string, x *tensor.RawTensor, f func(float64) float64) *tensor.RawTensor {
	result, plan := cpu.unaryPlan(op, x, x.DType())

	var err error
	switch x.DType() {
	case tensor.Float32:
		err = launch.Run1(plan, func(v float32) float32 { return float32(f(float64(v))) }, launch.Synchronous())
	case tensor.Float64:
		err = launch.Run1(plan, f, launch.Synchronous())
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %v", op, x.DType()))
	}
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}
	return result
}

// Exp applies the exponential function element-wise.
func (cpu *CPUBackend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unaryFloat("exp", x, math.Exp)
}

// Log applies the natural logarithm element-wise.
func (cpu *CPUBackend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unaryFloat("log", x, math.Log)
}

// Sqrt applies the square root element-wise.
func (cpu *CPUBackend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unaryFloat("sqrt", x, math.Sqrt)
}

// Neg negates each element.
func (cpu *CPUBackend) Neg(x *tensor.RawTensor) *tensor.RawTensor {
	result, plan := cpu.unaryPlan("neg", x, x.DType())

	var err error
	switch x.DType() {
	case tensor.Float32:
		err = launch.Run1(plan, func(v float32) float32 { return -v }, launch.Synchronous())
	case tensor.Float64:
		err = launch.Run1(plan, func(v float64) float64 { return -v }, launch.Synchronous())
	case tensor.Int32:
		err = launch.Run1(plan, func(v int32) int32 { return -v }, launch.Synchronous())
	case tensor.Int64:
		err = launch.Run1(plan, func(v int64) int64 { return -v }, launch.Synchronous())
	default:
		panic(fmt.Sprintf("neg: unsupported dtype %v", x.DType()))
	}
	if err != nil {
		panic(fmt.Sprintf("neg: %v", err))
	}
	return result
}

// Clamp limits each element to [lo, hi]. The bounds stay host-resident and
// travel into the kernel by value.
func (cpu *CPUBackend) Clamp(x *tensor.RawTensor, lo, hi float64) *tensor.RawTensor {
	result, plan := cpu.unaryPlan("clamp", x, x.DType())

	var err error
	switch x.DType() {
	case tensor.Float32:
		l, h := float32(lo), float32(hi)
		err = launch.Run1(plan, func(v float32) float32 {
			return min(max(v, l), h)
		}, launch.Synchronous())
	case tensor.Float64:
		err = launch.Run1(plan, func(v float64) float64 {
			return min(max(v, lo), hi)
		}, launch.Synchronous())
	default:
		panic(fmt.Sprintf("clamp: unsupported dtype %v", x.DType()))
	}
	if err != nil {
		panic(fmt.Sprintf("clamp: %v", err))
	}
	return result
}
