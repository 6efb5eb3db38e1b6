// Copyright 2026 Weft ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the CPU elementwise backend built on the Weft
// launch engine.
package cpu

import (
	internalcpu "github.com/weft-ml/weft/internal/backend/cpu"
)

// Backend implements elementwise tensor operations on CPU. Every
// operation is a per-element function handed to the launch engine.
type Backend = internalcpu.CPUBackend

// New creates a new CPU backend.
//
// Example:
//
//	backend := cpu.New()
//	sum := backend.Add(a, b)
func New() *Backend {
	return internalcpu.New()
}
