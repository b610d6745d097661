// Copyright 2026 Lemur ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package kernel provides the fixed rank-5 float32 tensors that back every
// graph node.
//
// # Overview
//
// A Tensor has a Shape, Strides and a base offset into a reference-counted
// buffer. Views (Alias, then Restride) share the buffer; storage is freed
// when the last holder calls Release.
//
// # Basic Usage
//
//	import "github.com/lemur-ml/lemur/kernel"
//
//	func main() {
//	    t, _ := kernel.FromSlice([]float32{1, 2, 3, 4}, kernel.MustShape(2, 2))
//	    t.Each(func(i kernel.Index) {
//	        t.Set(i, t.At(i)*2)
//	    })
//	    fmt.Println(t) // [[2.0000, 4.0000], [6.0000, 8.0000]]
//	}
package kernel

import "github.com/lemur-ml/lemur/internal/kernel"

// Rank is the fixed number of dimensions of every tensor.
const Rank = kernel.Rank

// Shape holds the size of each of the Rank dimensions.
type Shape = kernel.Shape

// Strides holds the element step of each dimension.
type Strides = kernel.Strides

// Index addresses one logical element.
type Index = kernel.Index

// Tensor is a strided view over a shared float32 buffer.
type Tensor = kernel.Tensor

// PrintOptions controls tensor formatting.
type PrintOptions = kernel.PrintOptions

// RNG is a seeded random source for initialization.
type RNG = kernel.RNG

// Errors returned or panicked with by kernel operations.
var (
	ErrInvalidShape    = kernel.ErrInvalidShape
	ErrBoundsViolation = kernel.ErrBoundsViolation
	ErrUseAfterFree    = kernel.ErrUseAfterFree
)

// NewShape builds a Shape from up to Rank dims, left-padded with 1s.
func NewShape(dims ...int) (Shape, error) {
	return kernel.NewShape(dims...)
}

// MustShape is NewShape that panics on error.
func MustShape(dims ...int) Shape {
	return kernel.MustShape(dims...)
}

// BroadcastShapes returns the broadcast of a and b.
func BroadcastShapes(a, b Shape) (Shape, error) {
	return kernel.BroadcastShapes(a, b)
}

// Empty allocates a zero-filled contiguous tensor.
func Empty(shape Shape) (*Tensor, error) {
	return kernel.Empty(shape)
}

// FromSlice copies row-major values into a new tensor.
func FromSlice(values []float32, shape Shape) (*Tensor, error) {
	return kernel.FromSlice(values, shape)
}

// Seed reseeds the global RNG.
func Seed(seed uint64) {
	kernel.Seed(seed)
}

// NewRNG creates an independent RNG.
func NewRNG(seed uint64) *RNG {
	return kernel.NewRNG(seed)
}

// SetPrintOptions changes how tensors are formatted by String.
func SetPrintOptions(opts PrintOptions) {
	kernel.DefaultPrintOptions = opts
}

// EnableParallel splits elementwise kernels across CPUs when on is true.
// Kernels run on the calling goroutine by default.
func EnableParallel(on bool) {
	kernel.EnableParallel(on)
}
