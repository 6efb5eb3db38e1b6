// Package cpu implements the CPU elementwise backend on top of the launch
// engine. Every operation is a plain per-element function handed to the
// engine, which picks the vectorized, checked or strided execution policy.
package cpu

import (
	"fmt"

	"github.com/weft-ml/weft/internal/device"
	"github.com/weft-ml/weft/internal/launch"
	"github.com/weft-ml/weft/internal/tensor"
)

// CPUBackend implements elementwise tensor operations on CPU.
type CPUBackend struct {
	device device.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: device.CPU,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() device.Device {
	return cpu.device
}

// binaryPlan allocates the broadcast result tensor and builds the launch
// plan for a binary operation.
func (cpu *CPUBackend) binaryPlan(op string, a, b *tensor.RawTensor, outDtype tensor.DataType) (*tensor.RawTensor, *launch.Plan) {
	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}

	result, err := tensor.NewRaw(outShape, outDtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}

	plan, err := launch.NewPlan(result, a, b)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}
	return result, plan
}

// unaryPlan allocates the result tensor and builds the launch plan for a
// unary operation.
func (cpu *CPUBackend) unaryPlan(op string, x *tensor.RawTensor, outDtype tensor.DataType) (*tensor.RawTensor, *launch.Plan) {
	result, err := tensor.NewRaw(x.Shape(), outDtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}

	plan, err := launch.NewPlan(result, x)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}
	return result, plan
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	result, plan := cpu.binaryPlan("add", a, b, a.DType())

	var err error
	switch a.DType() {
	case tensor.Float32:
		err = launch.Run2(plan, func(x, y float32) float32 { return x + y }, launch.Synchronous())
	case tensor.Float64:
		err = launch.Run2(plan, func(x, y float64) float64 { return x + y }, launch.Synchronous())
	case tensor.Int32:
		err = launch.Run2(plan, func(x, y int32) int32 { return x + y }, launch.Synchronous())
	case tensor.Int64:
		err = launch.Run2(plan, func(x, y int64) int64 { return x + y }, launch.Synchronous())
	default:
		panic(fmt.Sprintf("add: unsupported dtype %v", a.DType()))
	}
	if err != nil {
		panic(fmt.Sprintf("add: %v", err))
	}
	return result
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	result, plan := cpu.binaryPlan("sub", a, b, a.DType())

	var err error
	switch a.DType() {
	case tensor.Float32:
		err = launch.Run2(plan, func(x, y float32) float32 { return x - y }, launch.Synchronous())
	case tensor.Float64:
		err = launch.Run2(plan, func(x, y float64) float64 { return x - y }, launch.Synchronous())
	case tensor.Int32:
		err = launch.Run2(plan, func(x, y int32) int32 { return x - y }, launch.Synchronous())
	case tensor.Int64:
		err = launch.Run2(plan, func(x, y int64) int64 { return x - y }, launch.Synchronous())
	default:
		panic(fmt.Sprintf("sub: unsupported dtype %v", a.DType()))
	}
	if err != nil {
		panic(fmt.Sprintf("sub: %v", err))
	}
	return result
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	result, plan := cpu.binaryPlan("mul", a, b, a.DType())

	var err error
	switch a.DType() {
	case tensor.Float32:
		err = launch.Run2(plan, func(x, y float32) float32 { return x * y }, launch.Synchronous())
	case tensor.Float64:
		err = launch.Run2(plan, func(x, y float64) float64 { return x * y }, launch.Synchronous())
	case tensor.Int32:
		err = launch.Run2(plan, func(x, y int32) int32 { return x * y }, launch.Synchronous())
	case tensor.Int64:
		err = launch.Run2(plan, func(x, y int64) int64 { return x * y }, launch.Synchronous())
	default:
		panic(fmt.Sprintf("mul: unsupported dtype %v", a.DType()))
	}
	if err != nil {
		panic(fmt.Sprintf("mul: %v", err))
	}
	return result
}

// Div performs element-wise division with broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	result, plan := cpu.binaryPlan("div", a, b, a.DType())

	var err error
	switch a.DType() {
	case tensor.Float32:
		err = launch.Run2(plan, func(x, y float32) float32 { return x / y }, launch.Synchronous())
	case tensor.Float64:
		err = launch.Run2(plan, func(x, y float64) float64 { return x / y }, launch.Synchronous())
	case tensor.Int32:
		err = launch.Run2(plan, func(x, y int32) int32 { return x / y }, launch.Synchronous())
	case tensor.Int64:
		err = launch.Run2(plan, func(x, y int64) int64 { return x / y }, launch.Synchronous())
	default:
		panic(fmt.Sprintf("div: unsupported dtype %v", a.DType()))
	}
	if err != nil {
		panic(fmt.Sprintf("div: %v", err))
	}
	return result
}

// Fill sets every element of x to the given scalar value.
func (cpu *CPUBackend) Fill(x *tensor.RawTensor, value any) {
	plan, err := launch.NewPlan(x)
	if err != nil {
		panic(fmt.Sprintf("fill: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		v := tensor.CastScalar(value, tensor.Float32).(float32)
		err = launch.Run0(plan, func() float32 { return v }, launch.Synchronous())
	case tensor.Float64:
		v := tensor.CastScalar(value, tensor.Float64).(float64)
		err = launch.Run0(plan, func() float64 { return v }, launch.Synchronous())
	case tensor.Int32:
		v := tensor.CastScalar(value, tensor.Int32).(int32)
		err = launch.Run0(plan, func() int32 { return v }, launch.Synchronous())
	case tensor.Int64:
		v := tensor.CastScalar(value, tensor.Int64).(int64)
		err = launch.Run0(plan, func() int64 { return v }, launch.Synchronous())
	case tensor.Bool:
		v := tensor.CastScalar(value, tensor.Bool).(bool)
		err = launch.Run0(plan, func() bool { return v }, launch.Synchronous())
	default:
		panic(fmt.Sprintf("fill: unsupported dtype %v", x.DType()))
	}
	if err != nil {
		panic(fmt.Sprintf("fill: %v", err))
	}
}
