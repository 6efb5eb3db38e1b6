//go:build windows

// Copyright 2026 Weft ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the fixed-function GPU offload backend for
// contiguous float32 elementwise operations.
//
// Example:
//
//	gpu, err := webgpu.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gpu.Release()
//	sum, err := gpu.RunBinary("add", a, b)
package webgpu

import (
	internalwebgpu "github.com/weft-ml/weft/internal/backend/webgpu"
)

// Backend executes fixed elementwise operations on GPU via WebGPU.
type Backend = internalwebgpu.Backend

// New creates a new WebGPU backend. Returns an error if WebGPU is not
// available or initialization fails.
func New() (*Backend, error) {
	return internalwebgpu.New()
}
