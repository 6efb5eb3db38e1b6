package cpu

import (
	"fmt"

	"github.com/weft-ml/weft/internal/launch"
	"github.com/weft-ml/weft/internal/tensor"
)

// Comparison operations (element-wise, return bool tensor). These are the
// predicate shape of elementwise function: float arguments, bool result.

func (cpu *CPUBackend) compare(op string, a, b *tensor.RawTensor,
	f32 func(x, y float32) bool, f64 func(x, y float64) bool,
	i32 func(x, y int32) bool, i64 func(x, y int64) bool) *tensor.RawTensor {

	result, plan := cpu.binaryPlan(op, a, b, tensor.Bool)

	var err error
	switch a.DType() {
	case tensor.Float32:
		err = launch.Run2(plan, f32, launch.Synchronous())
	case tensor.Float64:
		err = launch.Run2(plan, f64, launch.Synchronous())
	case tensor.Int32:
		err = launch.Run2(plan, i32, launch.Synchronous())
	case tensor.Int64:
		err = launch.Run2(plan, i64, launch.Synchronous())
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %v", op, a.DType()))
	}
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}
	return result
}

// Greater returns a > b element-wise.
func (cpu *CPUBackend) Greater(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("greater", a, b,
		func(x, y float32) bool { return x > y },
		func(x, y float64) bool { return x > y },
		func(x, y int32) bool { return x > y },
		func(x, y int64) bool { return x > y })
}

// Lower returns a < b element-wise.
func (cpu *CPUBackend) Lower(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("lower", a, b,
		func(x, y float32) bool { return x < y },
		func(x, y float64) bool { return x < y },
		func(x, y int32) bool { return x < y },
		func(x, y int64) bool { return x < y })
}

// GreaterEqual returns a >= b element-wise.
func (cpu *CPUBackend) GreaterEqual(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("greaterEqual", a, b,
		func(x, y float32) bool { return x >= y },
		func(x, y float64) bool { return x >= y },
		func(x, y int32) bool { return x >= y },
		func(x, y int64) bool { return x >= y })
}

// LowerEqual returns a <= b element-wise.
func (cpu *CPUBackend) LowerEqual(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("lowerEqual", a, b,
		func(x, y float32) bool { return x <= y },
		func(x, y float64) bool { return x <= y },
		func(x, y int32) bool { return x <= y },
		func(x, y int64) bool { return x <= y })
}

// Equal returns a == b element-wise.
func (cpu *CPUBackend) Equal(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("equal", a, b,
		func(x, y float32) bool { return x == y },
		func(x, y float64) bool { return x == y },
		func(x, y int32) bool { return x == y },
		func(x, y int64) bool { return x == y })
}

// NotEqual returns a != b element-wise.
func (cpu *CPUBackend) NotEqual(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("notEqual", a, b,
		func(x, y float32) bool { return x != y },
		func(x, y float64) bool { return x != y },
		func(x, y int32) bool { return x != y },
		func(x, y int64) bool { return x != y })
}

// Where selects x where condition is true and y elsewhere.
func (cpu *CPUBackend) Where(condition, x, y *tensor.RawTensor) *tensor.RawTensor {
	if condition.DType() != tensor.Bool {
		panic(fmt.Sprintf("where: condition must be bool, got %v", condition.DType()))
	}
	if !x.Shape().Equal(y.Shape()) || !x.Shape().Equal(condition.Shape()) {
		panic(fmt.Sprintf("where: shape mismatch: %v, %v, %v", condition.Shape(), x.Shape(), y.Shape()))
	}

	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("where: %v", err))
	}
	plan, err := launch.NewPlan(result, condition, x, y)
	if err != nil {
		panic(fmt.Sprintf("where: %v", err))
	}

	// Mixed argument dtypes (bool condition, typed branches), so this
	// takes the dynamic-cast path.
	switch x.DType() {
	case tensor.Float32:
		err = launch.RunDynamic(plan, func(c bool, a, b float32) float32 {
			if c {
				return a
			}
			return b
		}, launch.Synchronous())
	case tensor.Float64:
		err = launch.RunDynamic(plan, func(c bool, a, b float64) float64 {
			if c {
				return a
			}
			return b
		}, launch.Synchronous())
	case tensor.Int32:
		err = launch.RunDynamic(plan, func(c bool, a, b int32) int32 {
			if c {
				return a
			}
			return b
		}, launch.Synchronous())
	case tensor.Int64:
		err = launch.RunDynamic(plan, func(c bool, a, b int64) int64 {
			if c {
				return a
			}
			return b
		}, launch.Synchronous())
	default:
		panic(fmt.Sprintf("where: unsupported dtype %v", x.DType()))
	}
	if err != nil {
		panic(fmt.Sprintf("where: %v", err))
	}
	return result
}
