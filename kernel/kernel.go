// Copyright 2026 Weft ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package kernel is the public entry point for launching elementwise
// functions over tensors. A launch takes a user function plus a plan
// describing the iteration shape and per-tensor strides, and the engine
// picks between a vectorized, checked or strided execution policy per
// block.
//
// Example:
//
//	out, _ := tensor.NewRaw(tensor.Shape{1024}, tensor.Float32, 0)
//	plan, _ := kernel.NewPlan(out, in)
//	err := kernel.Run1(plan, func(v float32) float32 { return v * v })
package kernel

import (
	"github.com/weft-ml/weft/internal/device"
	"github.com/weft-ml/weft/internal/launch"
	"github.com/weft-ml/weft/internal/tensor"
)

// Plan is the work descriptor for one launch.
type Plan = launch.Plan

// Signature is the introspected descriptor of an elementwise function.
type Signature = launch.Signature

// Option adjusts how a launch is issued.
type Option = launch.Option

// Config controls worker fan-out for block kernels.
type Config = launch.Config

// Stream is an ordered asynchronous work queue; launches enqueue on the
// process default stream unless WithStream is given.
type Stream = device.Stream

// NewPlan builds a plan for writing fn(ins...) into out, with NumPy-style
// broadcasting of the inputs against the output shape.
var NewPlan = launch.NewPlan

// SignatureOf derives a function's arity, argument dtypes and return
// dtype from its shape.
var SignatureOf = launch.SignatureOf

// NewStream creates a private stream.
var NewStream = device.NewStream

// DefaultStream returns the process-wide default stream.
var DefaultStream = device.Default

// Launch options.
var (
	WithStream  = launch.WithStream
	WithConfig  = launch.WithConfig
	Synchronous = launch.Synchronous
)

// Run0 fills the output with a zero-arity function.
func Run0[O tensor.Elem](p *Plan, fn func() O, opts ...Option) error {
	return launch.Run0(p, fn, opts...)
}

// Run1 applies a unary function over the plan.
func Run1[I, O tensor.Elem](p *Plan, fn func(I) O, opts ...Option) error {
	return launch.Run1(p, fn, opts...)
}

// Run2 applies a binary function over the plan; both operands must be
// device-resident tensors.
func Run2[I, O tensor.Elem](p *Plan, fn func(I, I) O, opts ...Option) error {
	return launch.Run2(p, fn, opts...)
}

// Run3 applies a ternary function over the plan.
func Run3[I, O tensor.Elem](p *Plan, fn func(I, I, I) O, opts ...Option) error {
	return launch.Run3(p, fn, opts...)
}

// Run2Scalar applies a binary function whose second operand is a
// host-resident scalar passed by value into the kernel.
func Run2Scalar[I, O tensor.Elem](p *Plan, s I, fn func(I, I) O, opts ...Option) error {
	return launch.Run2Scalar(p, s, fn, opts...)
}

// RunDynamic applies a function over operands of mixed dtypes, casting
// each element to the function's argument types at fetch time.
var RunDynamic = launch.RunDynamic
