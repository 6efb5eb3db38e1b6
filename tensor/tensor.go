// Copyright 2026 Weft ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor exposes the raw tensor types consumed and produced by the
// Weft elementwise launch engine: flat typed buffers with shapes, element
// strides and runtime dtype tags.
package tensor

import "github.com/weft-ml/weft/internal/tensor"

// RawTensor is the low-level tensor representation: a flat buffer plus
// shape, element strides and a runtime dtype tag.
type RawTensor = tensor.RawTensor

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// DataType represents runtime type information for tensors.
type DataType = tensor.DataType

// Supported data types.
const (
	Float32 = tensor.Float32
	Float64 = tensor.Float64
	Int32   = tensor.Int32
	Int64   = tensor.Int64
	Uint8   = tensor.Uint8
	Bool    = tensor.Bool
)

// NewRaw creates a zeroed tensor with the given shape and dtype.
var NewRaw = tensor.NewRaw

// BroadcastShapes applies NumPy-style broadcasting rules to two shapes.
var BroadcastShapes = tensor.BroadcastShapes

// FromSlice creates a CPU tensor from a typed slice.
func FromSlice[T tensor.Elem](values []T, shape Shape) (*RawTensor, error) {
	return tensor.FromSlice(values, shape)
}

// As interprets a tensor's buffer as a typed slice.
func As[T tensor.Elem](r *RawTensor) []T {
	return tensor.As[T](r)
}
