package autodiff

import (
	"fmt"
	"strings"

	"github.com/lemur-ml/lemur/internal/autodiff/ops"
	"github.com/lemur-ml/lemur/internal/kernel"
)

// Tensor is a graph node: forward data plus autograd bookkeeping.
type Tensor struct {
	id         NodeID
	graph      *Graph
	data       *kernel.Tensor // Forward values (owned or a view)
	grad       *kernel.Tensor // Accumulated gradient, nil until backward reaches it
	op         ops.OpID       // Producing op, ops.Leaf for inputs
	inputs     []NodeID       // Handles to the producing op's operands
	retainGrad bool
	freed      bool
}

// ID returns the node's handle.
func (t *Tensor) ID() NodeID {
	return t.id
}

// Graph returns the graph owning the node.
func (t *Tensor) Graph() *Graph {
	return t.graph
}

// Data returns the forward values.
func (t *Tensor) Data() *kernel.Tensor {
	return t.data
}

// Grad returns the accumulated gradient, or nil.
func (t *Tensor) Grad() *kernel.Tensor {
	return t.grad
}

// Op returns the id of the producing operation.
func (t *Tensor) Op() ops.OpID {
	return t.op
}

// Inputs returns the handles of the node's operands.
func (t *Tensor) Inputs() []NodeID {
	return append([]NodeID(nil), t.inputs...)
}

// IsLeaf reports whether no operation produced the node.
func (t *Tensor) IsLeaf() bool {
	return t.op == ops.Leaf
}

// RetainGrad reports whether the node keeps its grad after backward.
func (t *Tensor) RetainGrad() bool {
	return t.retainGrad
}

// SetRetainGrad changes whether an intermediate node keeps its grad.
func (t *Tensor) SetRetainGrad(retain bool) {
	t.retainGrad = retain
}

// Freed reports whether the node was freed.
func (t *Tensor) Freed() bool {
	return t.freed
}

// Shape returns the shape of the forward values.
func (t *Tensor) Shape() kernel.Shape {
	return t.data.Shape()
}

// Values returns a row-major copy of the forward values.
func (t *Tensor) Values() []float32 {
	return t.data.Values()
}

// GradValues returns a row-major copy of the gradient, or nil.
func (t *Tensor) GradValues() []float32 {
	if t.grad == nil {
		return nil
	}
	return t.grad.Values()
}

// ZeroGrad drops the node's gradient.
func (t *Tensor) ZeroGrad() {
	t.clearGrad()
}

func (t *Tensor) clearGrad() {
	if t.grad != nil {
		t.grad.Release()
		t.grad = nil
	}
}

// accumulateGrad sums contrib into the node's grad, taking ownership of it.
func (t *Tensor) accumulateGrad(contrib *kernel.Tensor) {
	if contrib.Shape() != t.data.Shape() {
		panic(fmt.Sprintf("autodiff: gradient shape %v does not match node %d shape %v",
			contrib.Shape(), t.id, t.data.Shape()))
	}
	if t.grad == nil {
		t.grad = contrib
		return
	}
	t.grad.Each(func(i kernel.Index) {
		t.grad.AddAt(i, contrib.At(i))
	})
	contrib.Release()
}

// String formats the node's values, op and gradient.
func (t *Tensor) String() string {
	if t.freed {
		return fmt.Sprintf("tensor(<freed #%d>)", t.id)
	}
	var sb strings.Builder
	sb.WriteString("tensor(")
	sb.WriteString(t.data.String())
	if !t.IsLeaf() {
		fmt.Fprintf(&sb, ", op=%s", t.op)
	}
	if t.grad != nil {
		fmt.Fprintf(&sb, ",\n grad=%s", t.grad.String())
	}
	sb.WriteString(")")
	return sb.String()
}
