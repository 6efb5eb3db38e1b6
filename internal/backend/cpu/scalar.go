package cpu

import (
	"fmt"

	"github.com/weft-ml/weft/internal/launch"
	"github.com/weft-ml/weft/internal/tensor"
)

// Scalar operations: element-wise operations combining a device tensor
// with a host-resident scalar. The scalar is passed by value into the
// kernel, never materialized into a tensor buffer.

func (cpu *CPUBackend) scalarOp(op string, x *tensor.RawTensor, scalar any,
	f32 func(x, s float32) float32, f64 func(x, s float64) float64,
	i32 func(x, s int32) int32, i64 func(x, s int64) int64) *tensor.RawTensor {

	result, plan := cpu.unaryPlan(op, x, x.DType())

	var err error
	switch x.DType() {
	case tensor.Float32:
		s := tensor.CastScalar(scalar, tensor.Float32).(float32)
		err = launch.Run2Scalar(plan, s, f32, launch.Synchronous())
	case tensor.Float64:
		s := tensor.CastScalar(scalar, tensor.Float64).(float64)
		err = launch.Run2Scalar(plan, s, f64, launch.Synchronous())
	case tensor.Int32:
		s := tensor.CastScalar(scalar, tensor.Int32).(int32)
		err = launch.Run2Scalar(plan, s, i32, launch.Synchronous())
	case tensor.Int64:
		s := tensor.CastScalar(scalar, tensor.Int64).(int64)
		err = launch.Run2Scalar(plan, s, i64, launch.Synchronous())
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %v", op, x.DType()))
	}
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}
	return result
}

// AddScalar adds a scalar value to each element of the tensor.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.scalarOp("addScalar", x, scalar,
		func(v, s float32) float32 { return v + s },
		func(v, s float64) float64 { return v + s },
		func(v, s int32) int32 { return v + s },
		func(v, s int64) int64 { return v + s })
}

// SubScalar subtracts a scalar value from each element of the tensor.
func (cpu *CPUBackend) SubScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.scalarOp("subScalar", x, scalar,
		func(v, s float32) float32 { return v - s },
		func(v, s float64) float64 { return v - s },
		func(v, s int32) int32 { return v - s },
		func(v, s int64) int64 { return v - s })
}

// MulScalar multiplies each element of the tensor by a scalar value.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.scalarOp("mulScalar", x, scalar,
		func(v, s float32) float32 { return v * s },
		func(v, s float64) float64 { return v * s },
		func(v, s int32) int32 { return v * s },
		func(v, s int64) int64 { return v * s })
}

// DivScalar divides each element of the tensor by a scalar value.
func (cpu *CPUBackend) DivScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.scalarOp("divScalar", x, scalar,
		func(v, s float32) float32 { return v / s },
		func(v, s float64) float64 { return v / s },
		func(v, s int32) int32 { return v / s },
		func(v, s int64) int64 { return v / s })
}
