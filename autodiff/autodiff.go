// Copyright 2026 Lemur ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation over
// rank-5 tensors.
//
// Every operation runs its forward kernel immediately and records a node
// in a Graph. Backward walks the graph from a root in reverse topological
// order and sums each op's input gradients into the input nodes.
//
// Example:
//
//	import (
//	    "github.com/lemur-ml/lemur/autodiff"
//	    "github.com/lemur-ml/lemur/kernel"
//	)
//
//	func main() {
//	    g := autodiff.NewGraph()
//	    a, _ := g.Arange(32, true)
//	    x, _ := autodiff.View(a, g.Descriptor(1, 1, 2, 4, 4), true)
//	    y, _ := autodiff.SumAll(x, false)
//	    _ = g.Backward(y)
//	    fmt.Println(x)
//	    fmt.Println(y.GraphString())
//	}
package autodiff

import (
	"github.com/lemur-ml/lemur/internal/autodiff"
	"github.com/lemur-ml/lemur/internal/autodiff/ops"
)

// Graph owns the nodes created through it.
type Graph = autodiff.Graph

// Tensor is a graph node.
type Tensor = autodiff.Tensor

// NodeID is a stable node handle.
type NodeID = autodiff.NodeID

// OpID identifies a registered operation.
type OpID = ops.OpID

// Registry introspection.
const (
	Leaf     = ops.Leaf
	TotalOps = ops.TotalOps
)

// Errors returned by dispatch and backward.
var (
	ErrNilTensor         = autodiff.ErrNilTensor
	ErrFreed             = autodiff.ErrFreed
	ErrGraphMismatch     = autodiff.ErrGraphMismatch
	ErrArity             = autodiff.ErrArity
	ErrNoGraph           = autodiff.ErrNoGraph
	ErrNotImplemented    = autodiff.ErrNotImplemented
	ErrShapeMismatch     = ops.ErrShapeMismatch
	ErrInvalidAxis       = ops.ErrInvalidAxis
	ErrInvalidDescriptor = ops.ErrInvalidDescriptor
	ErrNotContiguous     = ops.ErrNotContiguous
	ErrUnknownOp         = ops.ErrUnknownOp
)

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return autodiff.NewGraph()
}

// Default returns the process-wide graph.
func Default() *Graph {
	return autodiff.Default()
}

// OpName returns the registered name of id, or "unknown".
func OpName(id OpID) string {
	return ops.Name(id)
}

// Apply dispatches a registered op by id.
func Apply(id OpID, retainGrad bool, operands ...*Tensor) (*Tensor, error) {
	return autodiff.Apply(id, retainGrad, operands...)
}

// Backward runs the backward pass from root.
func Backward(root *Tensor) error {
	return autodiff.Backward(root)
}

// Free destroys a node.
func Free(t *Tensor) {
	autodiff.Free(t)
}

// Compile is reserved for graph compilation and is not implemented.
func Compile(root *Tensor) error {
	return autodiff.Compile(root)
}

// Binary operations. Operands broadcast over size-1 dims.

// Add returns a + b.
func Add(a, b *Tensor, retainGrad bool) (*Tensor, error) { return autodiff.Add(a, b, retainGrad) }

// Sub returns a - b.
func Sub(a, b *Tensor, retainGrad bool) (*Tensor, error) { return autodiff.Sub(a, b, retainGrad) }

// Mul returns a * b.
func Mul(a, b *Tensor, retainGrad bool) (*Tensor, error) { return autodiff.Mul(a, b, retainGrad) }

// Div returns a / b.
func Div(a, b *Tensor, retainGrad bool) (*Tensor, error) { return autodiff.Div(a, b, retainGrad) }

// Pow returns base ^ exponent.
func Pow(base, exponent *Tensor, retainGrad bool) (*Tensor, error) {
	return autodiff.Pow(base, exponent, retainGrad)
}

// Unary operations.

// Exp returns exp(a).
func Exp(a *Tensor, retainGrad bool) (*Tensor, error) { return autodiff.Exp(a, retainGrad) }

// ReLU returns max(0, a).
func ReLU(a *Tensor, retainGrad bool) (*Tensor, error) { return autodiff.ReLU(a, retainGrad) }

// Sigmoid returns 1 / (1 + exp(-a)).
func Sigmoid(a *Tensor, retainGrad bool) (*Tensor, error) { return autodiff.Sigmoid(a, retainGrad) }

// Log returns ln(a).
func Log(a *Tensor, retainGrad bool) (*Tensor, error) { return autodiff.Log(a, retainGrad) }

// Neg returns -a.
func Neg(a *Tensor, retainGrad bool) (*Tensor, error) { return autodiff.Neg(a, retainGrad) }

// Sqrt returns √a.
func Sqrt(a *Tensor, retainGrad bool) (*Tensor, error) { return autodiff.Sqrt(a, retainGrad) }

// Abs returns |a|.
func Abs(a *Tensor, retainGrad bool) (*Tensor, error) { return autodiff.Abs(a, retainGrad) }

// Sign returns sign(a).
func Sign(a *Tensor, retainGrad bool) (*Tensor, error) { return autodiff.Sign(a, retainGrad) }

// Reciprocal returns 1/a.
func Reciprocal(a *Tensor, retainGrad bool) (*Tensor, error) {
	return autodiff.Reciprocal(a, retainGrad)
}

// Tanh returns tanh(a).
func Tanh(a *Tensor, retainGrad bool) (*Tensor, error) { return autodiff.Tanh(a, retainGrad) }

// Sin returns sin(a).
func Sin(a *Tensor, retainGrad bool) (*Tensor, error) { return autodiff.Sin(a, retainGrad) }

// Cos returns cos(a).
func Cos(a *Tensor, retainGrad bool) (*Tensor, error) { return autodiff.Cos(a, retainGrad) }

// SiLU returns a * sigmoid(a).
func SiLU(a *Tensor, retainGrad bool) (*Tensor, error) { return autodiff.SiLU(a, retainGrad) }

// Reduction and shape operations. The second operand is a descriptor
// built with Graph.Descriptor.

// Sum reduces a over the axes held by axes.
func Sum(a, axes *Tensor, retainGrad bool) (*Tensor, error) { return autodiff.Sum(a, axes, retainGrad) }

// View reinterprets contiguous a under a new shape.
func View(a, shape *Tensor, retainGrad bool) (*Tensor, error) {
	return autodiff.View(a, shape, retainGrad)
}

// Expand broadcasts size-1 dims of a.
func Expand(a, shape *Tensor, retainGrad bool) (*Tensor, error) {
	return autodiff.Expand(a, shape, retainGrad)
}

// Permute reorders a's trailing dims.
func Permute(a, perm *Tensor, retainGrad bool) (*Tensor, error) {
	return autodiff.Permute(a, perm, retainGrad)
}

// SumAll reduces every axis.
func SumAll(a *Tensor, retainGrad bool) (*Tensor, error) { return autodiff.SumAll(a, retainGrad) }

// SumAxes reduces the given axes.
func SumAxes(a *Tensor, retainGrad bool, axes ...int) (*Tensor, error) {
	return autodiff.SumAxes(a, retainGrad, axes...)
}

// ViewShape is View with the shape given inline.
func ViewShape(a *Tensor, retainGrad bool, dims ...int) (*Tensor, error) {
	return autodiff.ViewShape(a, retainGrad, dims...)
}

// ExpandShape is Expand with the shape given inline.
func ExpandShape(a *Tensor, retainGrad bool, dims ...int) (*Tensor, error) {
	return autodiff.ExpandShape(a, retainGrad, dims...)
}

// PermuteAxes is Permute with the permutation given inline.
func PermuteAxes(a *Tensor, retainGrad bool, perm ...int) (*Tensor, error) {
	return autodiff.PermuteAxes(a, retainGrad, perm...)
}
